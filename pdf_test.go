package syntree

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// mockRenderer implements pdfRenderer for testing.
type mockRenderer struct {
	result     []byte
	err        error
	calledWith string
	content    string
	closed     bool
}

func (m *mockRenderer) RenderFromFile(_ context.Context, filePath string) ([]byte, error) {
	m.calledWith = filePath
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	m.content = string(data)
	return m.result, m.err
}

func (m *mockRenderer) Close() error {
	m.closed = true
	return nil
}

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mock    *mockRenderer
		wantErr error
	}{
		{
			name: "success",
			mock: &mockRenderer{result: []byte("%PDF-1.7")},
		},
		{
			name:    "renderer error propagates",
			mock:    &mockRenderer{err: ErrPageLoad},
			wantErr: ErrPageLoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := &rodConverter{renderer: tt.mock}
			got, err := conv.ToPDF(context.Background(), "<html><body>tree</body></html>")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ToPDF() error = %v, want %v", err, tt.wantErr)
				}
			} else {
				if err != nil {
					t.Fatalf("ToPDF() error = %v", err)
				}
				if string(got) != string(tt.mock.result) {
					t.Errorf("ToPDF() = %q, want %q", got, tt.mock.result)
				}
			}

			if !strings.Contains(tt.mock.calledWith, "syntree-") || !strings.HasSuffix(tt.mock.calledWith, ".html") {
				t.Errorf("temp file = %q, want syntree-*.html", tt.mock.calledWith)
			}
			if tt.mock.content != "<html><body>tree</body></html>" {
				t.Errorf("temp file content = %q", tt.mock.content)
			}
			if _, err := os.Stat(tt.mock.calledWith); !os.IsNotExist(err) {
				t.Errorf("temp file %q not removed", tt.mock.calledWith)
			}
		})
	}
}

func TestRodConverter_Close(t *testing.T) {
	t.Parallel()

	mock := &mockRenderer{}
	conv := &rodConverter{renderer: mock}
	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("renderer not closed")
	}

	if err := (&rodConverter{}).Close(); err != nil {
		t.Errorf("Close() on empty converter = %v", err)
	}
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	if err := newRodRenderer(defaultPDFTimeout).Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestRodRenderer_CancelledBeforeLaunch(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRodRenderer(defaultPDFTimeout)
	if _, err := r.RenderFromFile(ctx, "/nonexistent.html"); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
	if r.browser != nil {
		t.Error("browser launched for cancelled context")
	}
}

func TestPrintOptions(t *testing.T) {
	t.Parallel()

	opts := printOptions()
	if !opts.PrintBackground {
		t.Error("PrintBackground = false; dark backgrounds would be dropped")
	}
	if *opts.PaperWidth != paperWidthInches || *opts.PaperHeight != paperHeightInches {
		t.Errorf("paper = %vx%v", *opts.PaperWidth, *opts.PaperHeight)
	}
	for name, v := range map[string]*float64{
		"top": opts.MarginTop, "bottom": opts.MarginBottom,
		"left": opts.MarginLeft, "right": opts.MarginRight,
	} {
		if *v != marginInches {
			t.Errorf("margin %s = %v, want %v", name, *v, marginInches)
		}
	}
}
