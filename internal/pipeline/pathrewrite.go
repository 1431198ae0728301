package pipeline

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// linkAttributes maps the elements whose references point at local files
// to the attribute holding the reference.
var linkAttributes = map[string]string{
	"img": "src",
	"a":   "href",
}

// ResolveLocalLinks turns relative image sources and link targets into
// absolute file:// URLs below sourceDir, so a fragment converted from a file
// still finds its images once pasted elsewhere.
// With an empty sourceDir, or when nothing needs rewriting, the HTML is
// returned byte-for-byte.
func ResolveLocalLinks(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" || htmlContent == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", fmt.Errorf("resolving source directory: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	rewritten := 0
	for tag, attr := range linkAttributes {
		doc.Find(tag + "[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			ref, _ := s.Attr(attr)
			if resolved, ok := resolveLocalRef(ref, absSourceDir); ok {
				s.SetAttr(attr, resolved)
				rewritten++
			}
		})
	}
	if rewritten == 0 {
		return htmlContent, nil
	}

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return body, nil
}

// resolveLocalRef returns the file:// URL for a relative reference that stays
// inside dir.
func resolveLocalRef(ref, dir string) (string, bool) {
	if !isRelativePath(ref) {
		return "", false
	}
	absPath := filepath.Join(dir, ref)
	// Traversal outside dir keeps the original reference
	if !isPathUnderDir(absPath, dir) {
		return "", false
	}
	return pathToFileURL(absPath), true
}

// isRelativePath reports whether ref names a local relative file.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		// http, https, file, data, mailto...
		// A single letter is a Windows drive, not a scheme
		if len(u.Scheme) > 1 {
			return false
		}
	}
	return !filepath.IsAbs(ref)
}

// isPathUnderDir checks if absPath is under dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
