package md2word

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-md2word/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.ParagraphConverter)(nil)
	_ pipeline.HTMLAnnotator        = (*pipeline.WordStyler)(nil)
)

// Converter orchestrates the Markdown to styled HTML pipeline.
type Converter struct {
	cfg           converterConfig
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	annotator     pipeline.HTMLAnnotator
}

// NewConverter creates a Converter with default configuration.
// Returns ErrUnknownHighlightStyle if WithHighlighting names a style that
// does not exist.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{maxInputSize: DefaultMaxInputSize},
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		annotator:    pipeline.NewWordStyler(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.highlight {
		if err := pipeline.ValidateHighlightStyle(c.cfg.highlightStyle); err != nil {
			return nil, err
		}
	}

	// Injected by tests
	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewParagraphConverter(pipeline.RenderOptions{
			Highlight:      c.cfg.highlight,
			HighlightStyle: c.cfg.highlightStyle,
			RawHTML:        c.cfg.rawHTML,
		})
	}

	return c, nil
}

// Convert runs the full pipeline.
// Blank input returns an empty Result without invoking the parser.
// There is no partial result: any stage failing fails the whole call.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if strings.TrimSpace(mdContent) == "" {
		return &Result{}, nil
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	if input.SourceDir != "" {
		htmlContent, err = pipeline.ResolveLocalLinks(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("resolving local links: %w", err)
		}
	}

	styled, err := c.annotator.Annotate(ctx, htmlContent)
	if err != nil {
		return nil, fmt.Errorf("styling HTML: %w", err)
	}

	text, err := pipeline.PlainText(styled)
	if err != nil {
		return nil, fmt.Errorf("extracting plain text: %w", err)
	}

	return &Result{
		HTML:       styled,
		Text:       text,
		Paragraphs: len(pipeline.SplitParagraphs(mdContent)),
	}, nil
}

// validateInput checks the input against the configured limits.
func (c *Converter) validateInput(input Input) error {
	if len(input.Markdown) > c.cfg.maxInputSize {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrInputTooLarge, len(input.Markdown), c.cfg.maxInputSize)
	}
	return nil
}

// Convert converts markdown with a default Converter and returns the styled
// HTML, or an empty string and the error. Blank input returns "" and nil.
func Convert(markdown string) (string, error) {
	conv, err := NewConverter()
	if err != nil {
		return "", err
	}
	result, err := conv.Convert(context.Background(), Input{Markdown: markdown})
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// PlainText returns the plain-text alternative of a styled HTML fragment.
func PlainText(html string) (string, error) {
	return pipeline.PlainText(html)
}

// HighlightStyles lists the style names accepted by WithHighlighting.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}
