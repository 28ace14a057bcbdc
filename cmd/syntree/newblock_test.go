package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunNewBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		line    int
		want    string
		wantMsg string
	}{
		{
			name:    "blank line replaced",
			content: "# Trees\n\nafter",
			line:    2,
			want:    "# Trees\n```syntax\n\n```\nafter",
			wantMsg: "line 3",
		},
		{
			name:    "text line gets block below",
			content: "# Trees\nSee:",
			line:    2,
			want:    "# Trees\nSee:\n```syntax\n\n```",
			wantMsg: "line 4",
		},
		{
			name:    "default is last line",
			content: "intro\n",
			want:    "intro\n```syntax\n\n```",
			wantMsg: "line 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "doc.md")
			writeFile(t, path, tt.content)

			env := newTestEnv(t, nil)
			err := runNewBlock(context.Background(), []string{path}, &newBlockFlags{line: tt.line}, env.Environment)
			if err != nil {
				t.Fatalf("runNewBlock() error = %v", err)
			}

			if got := readFile(t, path); got != tt.want {
				t.Errorf("file =\n%q\nwant\n%q", got, tt.want)
			}
			if !strings.Contains(env.stdout.String(), tt.wantMsg) {
				t.Errorf("stdout = %q, want %q", env.stdout, tt.wantMsg)
			}
		})
	}
}

func TestRunNewBlock_Stdout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.md")
	writeFile(t, path, "text")

	env := newTestEnv(t, nil)
	if err := runNewBlock(context.Background(), []string{path}, &newBlockFlags{stdout: true}, env.Environment); err != nil {
		t.Fatalf("runNewBlock() error = %v", err)
	}
	if env.stdout.String() != "text\n```syntax\n\n```\n" {
		t.Errorf("stdout = %q", env.stdout)
	}
	if readFile(t, path) != "text" {
		t.Error("file modified with --stdout")
	}
}

func TestRunNewBlock_KeepsPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.md")
	writeFile(t, path, "text")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}

	env := newTestEnv(t, nil)
	if err := runNewBlock(context.Background(), []string{path}, &newBlockFlags{}, env.Environment); err != nil {
		t.Fatalf("runNewBlock() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestRunNewBlock_Errors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.md")
	writeFile(t, path, "one\ntwo")

	tests := []struct {
		name    string
		args    []string
		line    int
		wantErr error
	}{
		{name: "no file", wantErr: ErrNoInput},
		{name: "missing file", args: []string{path + ".nope"}, wantErr: os.ErrNotExist},
		{name: "line past end", args: []string{path}, line: 3, wantErr: ErrInvalidLine},
		{name: "negative line", args: []string{path}, line: -1, wantErr: ErrInvalidLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nil)
			err := runNewBlock(context.Background(), tt.args, &newBlockFlags{line: tt.line}, env.Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("runNewBlock() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
