package main

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	syntree "github.com/alnah/go-syntree"
)

func TestReadSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		stdin   io.Reader
		want    string
		wantErr error
	}{
		{name: "argument", args: []string{"[S]"}, want: "[S]"},
		{name: "stdin when no args", stdin: strings.NewReader("[S\n[NP]]\n"), want: "[S\n[NP]]\n"},
		{name: "stdin with dash", args: []string{"-"}, stdin: strings.NewReader("[VP]"), want: "[VP]"},
		{name: "too many args", args: []string{"[S]", "[NP]"}, wantErr: ErrTooManySources},
		{name: "blank stdin", stdin: strings.NewReader(" \n"), wantErr: syntree.ErrEmptySource},
		{name: "no stdin", wantErr: ErrReadInput},
		{name: "stdin read error", stdin: iotest.ErrReader(errors.New("broken pipe")), wantErr: ErrReadInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := readSource(tt.args, tt.stdin)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("readSource() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("readSource() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("readSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunRender(t *testing.T) {
	t.Parallel()

	t.Run("svg to stdout with joined lines", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, fakeRunner{})
		env.Stdin = strings.NewReader("[S\n[NP Alice]\n[VP runs]]")
		flags := &renderFlags{format: formatSVG, renderer: rendererFlags{outputDir: t.TempDir()}}

		if err := runRender(context.Background(), nil, flags, env.Environment); err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		out := env.stdout.String()
		if !strings.Contains(out, "[S[NP Alice][VP runs]]") {
			t.Errorf("source lines not joined: %s", out)
		}
		if !strings.Contains(out, `fill="#262626"`) || !strings.Contains(out, `fill="#c7c7c7"`) {
			t.Errorf("dark theme not applied: %s", out)
		}
	})

	t.Run("data uri", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, fakeRunner{})
		flags := &renderFlags{format: formatURI, renderer: rendererFlags{outputDir: t.TempDir()}}

		if err := runRender(context.Background(), []string{"[S]"}, flags, env.Environment); err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		if !strings.HasPrefix(env.stdout.String(), "data:image/svg+xml,%3Csvg") {
			t.Errorf("stdout = %q", env.stdout)
		}
	})

	t.Run("no theme writes file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, fakeRunner{})
		out := filepath.Join(t.TempDir(), "tree.svg")
		flags := &renderFlags{
			format:   formatSVG,
			output:   out,
			renderer: rendererFlags{outputDir: t.TempDir(), noTheme: true},
		}

		if err := runRender(context.Background(), []string{"[S]"}, flags, env.Environment); err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		svg := readFile(t, out)
		if !strings.Contains(svg, `fill="white"`) || strings.Contains(svg, "background-color") {
			t.Errorf("theme applied despite --no-theme: %s", svg)
		}
		if !strings.Contains(env.stdout.String(), "Created "+out) {
			t.Errorf("stdout = %q", env.stdout)
		}
	})

	t.Run("custom colors", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, fakeRunner{})
		flags := &renderFlags{
			format:   formatSVG,
			renderer: rendererFlags{outputDir: t.TempDir(), background: "#000", foreground: "#FFF"},
		}

		if err := runRender(context.Background(), []string{"[S]"}, flags, env.Environment); err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		if !strings.Contains(env.stdout.String(), `fill="#000000"`) || !strings.Contains(env.stdout.String(), `fill="#ffffff"`) {
			t.Errorf("colors not normalized: %s", env.stdout)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, fakeRunner{})
		flags := &renderFlags{format: "png"}
		err := runRender(context.Background(), []string{"[S]"}, flags, env.Environment)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("runRender() error = %v, want ErrInvalidFormat", err)
		}
	})

	t.Run("unwritable output", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, fakeRunner{})
		flags := &renderFlags{
			format:   formatSVG,
			output:   filepath.Join(t.TempDir(), "missing", "tree.svg"),
			renderer: rendererFlags{outputDir: t.TempDir()},
		}
		err := runRender(context.Background(), []string{"[S]"}, flags, env.Environment)
		if !errors.Is(err, ErrWriteOutput) {
			t.Errorf("runRender() error = %v, want ErrWriteOutput", err)
		}
	})
}
