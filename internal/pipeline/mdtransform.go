package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// ParagraphSeparator is the blank-line boundary between paragraph units.
// Rendered fragments are joined back with the same sequence.
const ParagraphSeparator = "\n\n"

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Runs of blank lines in extracted text
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before segmentation.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes line endings so CRLF files segment the same
// way as text submitted from a browser form.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 1.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// SplitParagraphs splits content on the literal blank-line separator and
// returns the trimmed, non-empty units in input order.
//
// The split is purely textual: a fenced code block that contains a blank
// line is cut in two, exactly like any other block.
func SplitParagraphs(content string) []string {
	segments := strings.Split(content, ParagraphSeparator)
	units := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		units = append(units, segment)
	}
	return units
}
