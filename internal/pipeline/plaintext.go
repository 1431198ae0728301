package pipeline

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText extracts the text/plain alternative of a styled fragment, the
// flavour pasted by editors that refuse rich text. Break markers become
// newlines and blank-line runs are limited to one.
func PlainText(htmlContent string) (string, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	text := doc.Find("body").Text()
	return strings.TrimSpace(compressBlankLines(text)), nil
}
