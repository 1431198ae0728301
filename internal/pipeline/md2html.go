package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// ContainerStyle is the base font declaration of the enclosing block.
const ContainerStyle = "font-family: Arial, sans-serif; font-size: 12pt; line-height: 1.15; margin: 0; padding: 0;"

// containerTemplate wraps the joined fragments in a single styled block.
const containerTemplate = `<div style="` + ContainerStyle + `">
%s
</div>`

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// RenderOptions configures the per-unit Markdown renderer.
type RenderOptions struct {
	// Highlight enables syntax colouring of fenced code with a language tag.
	Highlight bool
	// HighlightStyle names the chroma style (default: DefaultHighlightStyle).
	HighlightStyle string
	// RawHTML passes raw HTML in the source through instead of omitting it.
	RawHTML bool
}

// ParagraphConverter renders Markdown one paragraph unit at a time.
// It holds no parser: every unit gets its own goldmark instance, so heading
// ids and other parser context never carry over between units or calls.
type ParagraphConverter struct {
	opts RenderOptions
}

// NewParagraphConverter creates a ParagraphConverter.
func NewParagraphConverter(opts RenderOptions) *ParagraphConverter {
	return &ParagraphConverter{opts: opts}
}

// newMarkdown builds a fresh goldmark instance with tables, fenced code and
// heading ids (the table-of-contents anchors).
func (c *ParagraphConverter) newMarkdown() goldmark.Markdown {
	extensions := []goldmark.Extender{
		extension.NewTable(
			// align="..." keeps the style attribute free for the table cell rules
			extension.WithTableCellAlignMethod(extension.TableCellAlignAttribute),
		),
	}
	if c.opts.Highlight {
		extensions = append(extensions, newHighlighting(c.opts.HighlightStyle))
	}

	var rendererOpts []renderer.Option
	if c.opts.RawHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Heading anchors
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

// ToHTML splits content into paragraph units, renders each one with its own
// parser and joins the fragments inside the base-font container.
// Blank content yields an empty string without building any parser.
func (c *ParagraphConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	units := SplitParagraphs(content)
	if len(units) == 0 {
		return "", nil
	}

	fragments := make([]string, 0, len(units))
	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fragment, err := c.renderUnit(unit)
		if err != nil {
			return "", err
		}
		fragments = append(fragments, fragment)
	}

	return fmt.Sprintf(containerTemplate, strings.Join(fragments, ParagraphSeparator)), nil
}

// renderUnit converts one paragraph unit and drops the trailing newline
// goldmark leaves after the last block.
func (c *ParagraphConverter) renderUnit(unit string) (string, error) {
	var buf bytes.Buffer
	if err := c.newMarkdown().Convert([]byte(unit), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
