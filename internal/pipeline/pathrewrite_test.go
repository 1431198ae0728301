package pipeline

// Notes:
// - Tests ResolveLocalLinks through its public API; traversal checks are
//   verified by the observable result (reference left as written)

import (
	"runtime"
	"strings"
	"testing"
)

func testSourceDir() string {
	if runtime.GOOS == "windows" {
		return `C:\docs`
	}
	return "/docs"
}

func TestResolveLocalLinks(t *testing.T) {
	t.Parallel()

	sourceDir := testSourceDir()

	tests := []struct {
		name         string
		html         string
		sourceDir    string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image with dot slash",
			html:         `<p><img src="./images/logo.png" alt="logo"></p>`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="file://`, `alt="logo"`},
		},
		{
			name:         "relative image without dot slash",
			html:         `<img src="images/logo.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="file://`},
		},
		{
			name:         "relative link rewritten",
			html:         `<a href="other.md">Link</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="file://`},
		},
		{
			name:         "absolute path unchanged",
			html:         `<img src="/abs/logo.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="/abs/logo.png"`},
		},
		{
			name:         "URLs unchanged",
			html:         `<a href="https://example.com">x</a><img src="data:image/png;base64,AB"><a href="mailto:a@b.c">m</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="https://example.com"`, `src="data:image/png;base64,AB"`, `href="mailto:a@b.c"`},
		},
		{
			name:         "protocol-relative URL unchanged",
			html:         `<img src="//cdn.example.com/logo.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="//cdn.example.com/logo.png"`},
		},
		{
			name:         "anchor link unchanged",
			html:         `<a href="#title">Top</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="#title"`},
		},
		{
			name:         "parent traversal left as written",
			html:         `<img src="../../../etc/passwd">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="../../../etc/passwd"`},
		},
		{
			name:         "spaces encoded",
			html:         `<img src="./my images/logo.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{"my%20images"},
		},
		{
			name:         "empty source dir returns unchanged",
			html:         `<img src="./logo.png">`,
			sourceDir:    "",
			wantContains: []string{`src="./logo.png"`},
		},
		{
			name:         "fragment not wrapped in document",
			html:         `<p>Hello</p><img src="./logo.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{"<p>Hello</p>", `src="file://`},
			wantExcludes: []string{"<html>", "<body>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveLocalLinks(tt.html, tt.sourceDir)
			if err != nil {
				t.Fatalf("ResolveLocalLinks() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ResolveLocalLinks() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ResolveLocalLinks() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestResolveLocalLinks_NothingToRewriteIsByteIdentical(t *testing.T) {
	t.Parallel()

	input := "<div style=\"x\">\n<p>a &amp; b</p>\n<a href=\"#x\">y</a>\n</div>"
	got, err := ResolveLocalLinks(input, testSourceDir())
	if err != nil {
		t.Fatalf("ResolveLocalLinks() error = %v", err)
	}
	if got != input {
		t.Errorf("ResolveLocalLinks() = %q, want input unchanged", got)
	}
}

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"", false},
		{"#anchor", false},
		{"//cdn.example.com/x.png", false},
		{"http://example.com", false},
		{"https://example.com", false},
		{"file:///tmp/x", false},
		{"data:image/png;base64,AB", false},
		{"mailto:a@b.c", false},
		{"./a.png", true},
		{"a.png", true},
		{"dir/a.png", true},
		{"../a.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := isRelativePath(tt.path); got != tt.want {
				t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
