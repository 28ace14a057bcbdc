package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name         string
		style        string
		wantErr      error
		wantContains string
	}{
		{name: "dark style", style: "dark", wantContains: "#262626"},
		{name: "plain style", style: "plain", wantContains: ".syntree"},
		{name: "unknown style", style: "neon", wantErr: ErrStyleNotFound},
		{name: "traversal", style: "../dark", wantErr: ErrInvalidAssetName},
		{name: "extension included", style: "dark.css", wantErr: ErrInvalidAssetName},
		{name: "empty", style: "", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			css, err := loader.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.style, err)
			}
			if !strings.Contains(css, tt.wantContains) {
				t.Errorf("LoadStyle(%q) missing %q", tt.style, tt.wantContains)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tmpl, err := loader.LoadTemplate(DocumentTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "{{.Title}}", "{{.Body}}"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("document template missing %q", want)
		}
	}

	if _, err := loader.LoadTemplate("cover"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(cover) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestEmbeddedLoader_Styles(t *testing.T) {
	t.Parallel()

	got := NewEmbeddedLoader().Styles()
	want := []string{"dark", "plain"}
	if !slices.Equal(got, want) {
		t.Errorf("Styles() = %v, want %v", got, want)
	}
}

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"dark", "my-style", "style_2"} {
		if err := ValidateAssetName(name); err != nil {
			t.Errorf("ValidateAssetName(%q) = %v, want nil", name, err)
		}
	}
	for _, name := range []string{"", "a/b", `a\b`, "a.b", ".."} {
		if err := ValidateAssetName(name); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("ValidateAssetName(%q) = %v, want ErrInvalidAssetName", name, err)
		}
	}
}
