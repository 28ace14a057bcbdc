package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	syntree "github.com/alnah/go-syntree"
	"github.com/alnah/go-syntree/internal/assets"
)

// fakeRunner stands in for the renderer process. It writes an SVG echoing
// the source into the -o directory. Stateless, so safe for batch tests.
type fakeRunner struct {
	stdout  string // parse diagnostics instead of an image
	err     error
	version string
}

func (f fakeRunner) Run(_ context.Context, _ string, args ...string) (string, string, error) {
	if len(args) == 1 && args[0] == "--version" {
		return f.version, "", nil
	}
	if f.err != nil {
		return "", "boom", f.err
	}
	if f.stdout != "" {
		return f.stdout, "", nil
	}

	dir, source := outputDirArg(args), args[len(args)-1]
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><rect fill="white"/><text fill="black">` + source + `</text></svg>`
	return "", "", os.WriteFile(filepath.Join(dir, syntree.OutputFileName), []byte(svg), 0o600)
}

func outputDirArg(args []string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-o" {
			return args[i+1]
		}
	}
	return ""
}

// testEnv holds an Environment and its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an environment with a fake renderer that always
// resolves on PATH.
func newTestEnv(t *testing.T, runner syntree.CommandRunner) *testEnv {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:         time.Now,
			Stdin:       strings.NewReader(""),
			Stdout:      stdout,
			Stderr:      stderr,
			Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
			Runner:      runner,
			LookPath:    func(file string) (string, error) { return "/usr/bin/" + file, nil },
			AssetLoader: assets.NewEmbeddedLoader(),
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// missingLookPath simulates an uninstalled renderer.
func missingLookPath(string) (string, error) {
	return "", errors.New("executable file not found in $PATH")
}

// writeFile creates parent directories and writes content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// readFile returns the file content or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
