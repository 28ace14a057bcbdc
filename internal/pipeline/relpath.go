package pipeline

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// linkAttrs maps elements to the attribute holding a local reference.
// <object data> covers trees embedded from files rather than data URIs.
var linkAttrs = map[string]string{
	"img":    "src",
	"a":      "href",
	"object": "data",
}

// RewriteRelativePaths turns relative img/a/object references in a full
// HTML document into file:// URLs under sourceDir, so the document still
// resolves them once written to a temp file for printing.
// Paths escaping sourceDir are left alone. Empty sourceDir is a no-op.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}
	base, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", fmt.Errorf("resolving source dir: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	changed := false
	for tag, attr := range linkAttrs {
		doc.Find(tag + "[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			val, _ := s.Attr(attr)
			if !isRelativePath(val) {
				return
			}
			abs := filepath.Join(base, val)
			if !isPathUnderDir(abs, base) {
				return
			}
			s.SetAttr(attr, pathToFileURL(abs))
			changed = true
		})
	}
	if !changed {
		return htmlContent, nil
	}

	out, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return out, nil
}

// isRelativePath reports whether path is a local relative reference.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if u, err := url.Parse(path); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false // http:, https:, file:, data:, mailto: ...
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir reports whether absPath is dir or inside it.
func isPathUnderDir(absPath, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(absPath))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
