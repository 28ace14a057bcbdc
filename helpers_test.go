package syntree

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// sampleSVG mimics rsyntaxtree output: white background, black strokes,
// and a white-space declaration that must survive theming.
const sampleSVG = `<?xml version="1.0"?>
<svg width="200" height="100" xmlns="http://www.w3.org/2000/svg">
<rect width="200" height="100" fill="white"/>
<text fill="black" style="white-space: pre">NP</text>
<line stroke="black" x1="0" y1="0" x2="10" y2="10"/>
</svg>`

// mockRunner implements CommandRunner for testing.
// When svg is set it writes it into the -o directory, like the real renderer.
type mockRunner struct {
	mu     sync.Mutex
	stdout string
	stderr string
	err    error
	svg    string
	calls  [][]string
	names  []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	m.names = append(m.names, name)
	m.calls = append(m.calls, append([]string(nil), args...))
	m.mu.Unlock()

	if m.svg != "" && m.err == nil && m.stdout == "" {
		if err := os.WriteFile(filepath.Join(outputDirArg(args), OutputFileName), []byte(m.svg), 0o644); err != nil {
			return "", "", err
		}
	}
	return m.stdout, m.stderr, m.err
}

func (m *mockRunner) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockRunner) lastArgs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}

// echoRunner writes an SVG that embeds the request source, so each
// caller can tell whether it got its own image back.
type echoRunner struct {
	before func() // runs before writing, to interleave goroutines
}

func (e *echoRunner) Run(_ context.Context, _ string, args ...string) (string, string, error) {
	if e.before != nil {
		e.before()
	}
	source := args[len(args)-1]
	svg := `<svg fill="white"><text>` + source + `</text></svg>`
	return "", "", os.WriteFile(filepath.Join(outputDirArg(args), OutputFileName), []byte(svg), 0o644)
}

// outputDirArg returns the value following -o.
func outputDirArg(args []string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-o" {
			return args[i+1]
		}
	}
	return ""
}

// fakeHost implements TextInjectable by recording calls.
type fakeHost struct {
	mu      sync.Mutex
	texts   []string
	objects []string
	mimes   []string
}

func (h *fakeHost) AppendText(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.texts = append(h.texts, text)
}

func (h *fakeHost) AppendObject(data, mimeType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.objects = append(h.objects, data)
	h.mimes = append(h.mimes, mimeType)
}

// decodeDataURI reverses SVGDataURI.
func decodeDataURI(t *testing.T, data string) string {
	t.Helper()

	payload, ok := strings.CutPrefix(data, "data:"+SVGMimeType+",")
	if !ok {
		t.Fatalf("not an SVG data URI: %.60q", data)
	}
	svg, err := url.PathUnescape(payload)
	if err != nil {
		t.Fatalf("decoding data URI: %v", err)
	}
	return svg
}

// newTestRenderer builds a Renderer writing under a fresh temp dir and
// returns that dir.
func newTestRenderer(t *testing.T, runner CommandRunner, opts ...Option) (*Renderer, string) {
	t.Helper()

	dir := t.TempDir()
	base := []Option{WithRunner(runner), WithOutputDir(dir)}
	return NewRenderer(append(base, opts...)...), dir
}

// listDir returns entry names of dir, failing the test on error.
func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s): %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
