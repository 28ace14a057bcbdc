package main

// Notes:
// - runMain: we test exit codes and dispatch. Actual rendering uses the
//   fakeRunner; real rsyntaxtree is covered by integration tests.
// - poolAdapter: we test Size and the panic on a foreign converter type.

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	syntree "github.com/alnah/go-syntree"
)

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       func(dir string) []string
		runner     syntree.CommandRunner
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no command",
			args:       func(string) []string { return []string{"syntree"} },
			wantCode:   ExitUsage,
			wantStderr: "Usage: syntree",
		},
		{
			name:       "unknown command",
			args:       func(string) []string { return []string{"syntree", "draw"} },
			wantCode:   ExitUsage,
			wantStderr: "Unknown command: draw",
		},
		{
			name:       "version",
			args:       func(string) []string { return []string{"syntree", "version"} },
			wantCode:   ExitSuccess,
			wantStdout: "syntree dev",
		},
		{
			name:       "help",
			args:       func(string) []string { return []string{"syntree", "help", "render"} },
			wantCode:   ExitSuccess,
			wantStdout: "Usage: syntree render",
		},
		{
			name: "config",
			args: func(dir string) []string {
				return []string{"syntree", "config", "--output-dir", dir, "--background", "#000"}
			},
			wantCode:   ExitSuccess,
			wantStdout: "#000",
		},
		{
			name:       "help unknown command",
			args:       func(string) []string { return []string{"syntree", "help", "nope"} },
			wantCode:   ExitUsage,
			wantStderr: "Unknown command: nope",
		},
		{
			name: "render success",
			args: func(dir string) []string {
				return []string{"syntree", "render", "--output-dir", dir, "[S [NP a]]"}
			},
			runner:     fakeRunner{},
			wantCode:   ExitSuccess,
			wantStdout: `style="background-color: #262626;"`,
		},
		{
			name: "render parse error",
			args: func(dir string) []string {
				return []string{"syntree", "render", "--output-dir", dir, "[S"}
			},
			runner:     fakeRunner{stdout: "Error: unbalanced brackets\n"},
			wantCode:   ExitRenderer,
			wantStderr: "unbalanced brackets",
		},
		{
			name: "render process error",
			args: func(dir string) []string {
				return []string{"syntree", "render", "--output-dir", dir, "[S]"}
			},
			runner:     fakeRunner{err: errors.New("exit status 1")},
			wantCode:   ExitRenderer,
			wantStderr: "exit status 1: boom",
		},
		{
			name:       "bad flag",
			args:       func(string) []string { return []string{"syntree", "render", "--nope"} },
			wantCode:   ExitUsage,
			wantStderr: "unknown flag",
		},
		{
			name:     "flag help",
			args:     func(string) []string { return []string{"syntree", "render", "--help"} },
			wantCode: ExitSuccess,
		},
		{
			name: "bad theme color",
			args: func(dir string) []string {
				return []string{"syntree", "render", "--output-dir", dir, "--background", "navy", "[S]"}
			},
			runner:   fakeRunner{},
			wantCode: ExitUsage,
		},
		{
			name: "bad timeout",
			args: func(dir string) []string {
				return []string{"syntree", "render", "--output-dir", dir, "-t", "-1s", "[S]"}
			},
			runner:     fakeRunner{},
			wantCode:   ExitUsage,
			wantStderr: "invalid timeout",
		},
		{
			name:     "convert without input",
			args:     func(string) []string { return []string{"syntree", "convert"} },
			runner:   fakeRunner{},
			wantCode: ExitIO,
		},
		{
			name:     "new-block without input",
			args:     func(string) []string { return []string{"syntree", "new-block"} },
			wantCode: ExitIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, tt.runner)
			code := runMain(tt.args(t.TempDir()), env.Environment)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstderr: %s", code, tt.wantCode, env.stderr)
			}
			if !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want substring %q", env.stdout, tt.wantStdout)
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", env.stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMain_MarkdownShorthand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "trees.md")
	writeFile(t, input, "# Trees\n\n```syntax\n[S [NP a]]\n```\n")

	env := newTestEnv(t, fakeRunner{})
	code := runMain([]string{"syntree", input, "--output-dir", filepath.Join(dir, "out")}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, env.stderr)
	}
	if !strings.Contains(readFile(t, filepath.Join(dir, "trees.html")), "<object ") {
		t.Error("tree not embedded in HTML")
	}
}

func TestRunMain_RendererNotFoundHint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.LookPath = missingLookPath

	code := runMain([]string{"syntree", "render", "--output-dir", t.TempDir(), "[S]"}, env.Environment)
	if code != ExitRenderer {
		t.Errorf("exit code = %d, want %d", code, ExitRenderer)
	}
	if !strings.Contains(env.stderr.String(), "hint: install it with: gem install rsyntaxtree") {
		t.Errorf("missing install hint:\n%s", env.stderr)
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeMarkdown
// ---------------------------------------------------------------------------

func TestLooksLikeMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"doc.md", true},
		{"DOC.MD", true},
		{"notes.markdown", true},
		{"render", false},
		{"tree.svg", false},
		{"md", false},
	}

	for _, tt := range tests {
		if got := looksLikeMarkdown(tt.arg); got != tt.want {
			t.Errorf("looksLikeMarkdown(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPoolAdapter - Pool adapter behavior
// ---------------------------------------------------------------------------

// foreignConverter is a CLIConverter that is NOT *syntree.Converter.
type foreignConverter struct{}

func (foreignConverter) Convert(context.Context, syntree.Input) (*syntree.ConvertResult, error) {
	return &syntree.ConvertResult{}, nil
}

func TestPoolAdapter_Release_WrongType(t *testing.T) {
	t.Parallel()

	adapter := &poolAdapter{pool: syntree.NewConverterPool(1, func() (*syntree.Converter, error) {
		return nil, errors.New("unused")
	})}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for wrong type, got none")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "unexpected type") {
			t.Errorf("panic = %v, want 'unexpected type'", r)
		}
	}()

	adapter.Release(foreignConverter{})
}

func TestPoolAdapter_Size(t *testing.T) {
	t.Parallel()

	adapter := &poolAdapter{pool: syntree.NewConverterPool(3, nil)}
	if adapter.Size() != 3 {
		t.Errorf("Size() = %d, want 3", adapter.Size())
	}
}
