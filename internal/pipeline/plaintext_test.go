package pipeline

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \n ",
			want:  "",
		},
		{
			name:  "entities decoded",
			input: "<p>a &amp; b &lt;c&gt;</p>",
			want:  "a & b <c>",
		},
		{
			name: "paragraphs separated by one blank line",
			input: `<div style="` + ContainerStyle + `">` + "\n" +
				styled("p", "", ParagraphStyle) + "Para one.</p>\n" + BreakMarker + "\n" +
				styled("p", "", LastParagraphStyle) + "Para two.</p>\n</div>",
			want: "Para one.\n\nPara two.",
		},
		{
			name:  "markup dropped",
			input: `<h1 id="t">Title</h1>` + "\n\n" + `<p>Some <strong>bold</strong> and <code>code</code>.</p>`,
			want:  "Title\n\nSome bold and code.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := PlainText(tt.input)
			if err != nil {
				t.Fatalf("PlainText() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlainText_ConvertedDocument(t *testing.T) {
	t.Parallel()

	styledHTML := convertAndAnnotate(t, "# Title\n\nFirst.\n\nSecond.\n\n- a\n- b")
	got, err := PlainText(styledHTML)
	if err != nil {
		t.Fatalf("PlainText() unexpected error: %v", err)
	}
	for _, want := range []string{"Title", "First.", "Second.", "a", "b"} {
		if !strings.Contains(got, want) {
			t.Errorf("PlainText() missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, "<") {
		t.Errorf("PlainText() kept markup: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("PlainText() kept blank-line runs: %q", got)
	}
}
