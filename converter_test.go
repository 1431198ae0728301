package md2word

// Notes:
// - Converter.Convert is tested with mocked stages to isolate error handling
//   and data flow; end-to-end behaviour is covered with the real pipeline
// - Internal test options (withPreprocessor, etc.) enable dependency injection

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-md2word/internal/pipeline"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPreprocessor struct {
	called bool
	output string
}

func (m *mockPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	m.called = true
	if m.output != "" {
		return m.output
	}
	return content
}

type mockHTMLConverter struct {
	called bool
	input  string
	output string
	err    error
	panics bool
}

func (m *mockHTMLConverter) ToHTML(ctx context.Context, content string) (string, error) {
	m.called = true
	m.input = content
	if m.panics {
		panic("boom")
	}
	if m.err != nil {
		return "", m.err
	}
	if m.output != "" {
		return m.output, nil
	}
	return "<p>" + content + "</p>", nil
}

type mockAnnotator struct {
	called bool
	input  string
	err    error
}

func (m *mockAnnotator) Annotate(ctx context.Context, htmlContent string) (string, error) {
	m.called = true
	m.input = htmlContent
	if m.err != nil {
		return "", m.err
	}
	return htmlContent, nil
}

func withPreprocessor(p pipeline.MarkdownPreprocessor) Option {
	return func(c *Converter) {
		c.preprocessor = p
	}
}

func withHTMLConverter(h pipeline.HTMLConverter) Option {
	return func(c *Converter) {
		c.htmlConverter = h
	}
}

func withAnnotator(a pipeline.HTMLAnnotator) Option {
	return func(c *Converter) {
		c.annotator = a
	}
}

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()

	c, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// NewConverter
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"defaults", nil, nil},
		{"highlighting default style", []Option{WithHighlighting("")}, nil},
		{"highlighting named style", []Option{WithHighlighting("monokai")}, nil},
		{"highlighting unknown style", []Option{WithHighlighting("nope")}, ErrUnknownHighlightStyle},
		{"raw HTML", []Option{WithRawHTML(true)}, nil},
		{"max input size", []Option{WithMaxInputSize(10)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewConverter(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && c == nil {
				t.Fatal("NewConverter() returned nil converter")
			}
		})
	}
}

func TestWithMaxInputSize_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithMaxInputSize(0) should panic")
		}
	}()
	WithMaxInputSize(0)
}

// ---------------------------------------------------------------------------
// Convert with mocks
// ---------------------------------------------------------------------------

func TestConverter_Convert_BlankInputSkipsStages(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "\n\n\t\n", "\r\n\r\n"} {
		htmlConv := &mockHTMLConverter{}
		annotator := &mockAnnotator{}
		c := newTestConverter(t, withHTMLConverter(htmlConv), withAnnotator(annotator))

		result, err := c.Convert(context.Background(), Input{Markdown: input})
		if err != nil {
			t.Fatalf("Convert(%q) unexpected error: %v", input, err)
		}
		if result.HTML != "" || result.Text != "" || result.Paragraphs != 0 {
			t.Errorf("Convert(%q) = %+v, want empty result", input, result)
		}
		if htmlConv.called || annotator.called {
			t.Errorf("Convert(%q) invoked pipeline stages for blank input", input)
		}
	}
}

func TestConverter_Convert_DataFlow(t *testing.T) {
	t.Parallel()

	pre := &mockPreprocessor{output: "normalized"}
	htmlConv := &mockHTMLConverter{output: "<p>rendered</p>"}
	annotator := &mockAnnotator{}
	c := newTestConverter(t, withPreprocessor(pre), withHTMLConverter(htmlConv), withAnnotator(annotator))

	result, err := c.Convert(context.Background(), Input{Markdown: "raw"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if !pre.called {
		t.Error("preprocessor not called")
	}
	if htmlConv.input != "normalized" {
		t.Errorf("HTML converter input = %q, want %q", htmlConv.input, "normalized")
	}
	if annotator.input != "<p>rendered</p>" {
		t.Errorf("annotator input = %q, want %q", annotator.input, "<p>rendered</p>")
	}
	if result.HTML != "<p>rendered</p>" {
		t.Errorf("HTML = %q", result.HTML)
	}
	if result.Text != "rendered" {
		t.Errorf("Text = %q, want %q", result.Text, "rendered")
	}
	if result.Paragraphs != 1 {
		t.Errorf("Paragraphs = %d, want 1", result.Paragraphs)
	}
}

func TestConverter_Convert_Errors(t *testing.T) {
	t.Parallel()

	parseErr := errors.New("parser exploded")
	styleErr := errors.New("annotator exploded")

	tests := []struct {
		name      string
		htmlConv  *mockHTMLConverter
		annotator *mockAnnotator
		opts      []Option
		input     string
		wantErr   error
		wantMsg   string
	}{
		{
			name:     "HTML conversion failure propagates",
			htmlConv: &mockHTMLConverter{err: parseErr},
			input:    "x",
			wantErr:  parseErr,
			wantMsg:  "converting to HTML",
		},
		{
			name:      "annotation failure propagates",
			htmlConv:  &mockHTMLConverter{},
			annotator: &mockAnnotator{err: styleErr},
			input:     "x",
			wantErr:   styleErr,
			wantMsg:   "styling HTML",
		},
		{
			name:     "panic recovered as error",
			htmlConv: &mockHTMLConverter{panics: true},
			input:    "x",
			wantMsg:  "internal error: boom",
		},
		{
			name:     "input too large",
			htmlConv: &mockHTMLConverter{},
			opts:     []Option{WithMaxInputSize(4)},
			input:    "12345",
			wantErr:  ErrInputTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]Option{withHTMLConverter(tt.htmlConv)}, tt.opts...)
			if tt.annotator != nil {
				opts = append(opts, withAnnotator(tt.annotator))
			}
			c := newTestConverter(t, opts...)

			result, err := c.Convert(context.Background(), Input{Markdown: tt.input})
			if err == nil {
				t.Fatal("Convert() expected error")
			}
			if result != nil {
				t.Errorf("Convert() result = %+v, want nil on failure", result)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Convert() error = %q, want to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestConverter_Convert_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestConverter(t)
	_, err := c.Convert(ctx, Input{Markdown: "# Hello"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// Convert end to end
// ---------------------------------------------------------------------------

func TestConverter_Convert_Pipeline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		input          string
		wantParagraphs int
		wantContains   []string
		wantText       string
	}{
		{
			name:           "heading and paragraph",
			input:          "# Title\n\nSome text.",
			wantParagraphs: 2,
			wantContains: []string{
				`<h1 id="title" style="font-size: 18pt; font-weight: bold;`,
				`<p style="margin: 0; line-height: 1.15; padding: 0;">Some text.</p>`,
			},
			wantText: "Title\n\nSome text.",
		},
		{
			name:           "two paragraphs",
			input:          "Para one.\n\nPara two.",
			wantParagraphs: 2,
			wantContains: []string{
				`<p style="margin: 0 0 12pt 0; line-height: 1.15; padding: 0;">Para one.</p>` + "\n<br>\n" +
					`<p style="margin: 0; line-height: 1.15; padding: 0;">Para two.</p>`,
			},
			wantText: "Para one.\n\nPara two.",
		},
		{
			name:           "CRLF input segments like LF",
			input:          "Para one.\r\n\r\nPara two.",
			wantParagraphs: 2,
			wantContains:   []string{"<br>"},
		},
		{
			name:           "wrapped in base font container",
			input:          "x",
			wantParagraphs: 1,
			wantContains: []string{
				`<div style="font-family: Arial, sans-serif; font-size: 12pt; line-height: 1.15; margin: 0; padding: 0;">`,
				"</div>",
			},
		},
	}

	c := newTestConverter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := c.Convert(context.Background(), Input{Markdown: tt.input})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			if result.Paragraphs != tt.wantParagraphs {
				t.Errorf("Paragraphs = %d, want %d", result.Paragraphs, tt.wantParagraphs)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(result.HTML, want) {
					t.Errorf("HTML missing %q in:\n%s", want, result.HTML)
				}
			}
			if tt.wantText != "" && result.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", result.Text, tt.wantText)
			}
		})
	}
}

func TestConverter_Convert_SourceDir(t *testing.T) {
	t.Parallel()

	dir := "/docs"
	if runtime.GOOS == "windows" {
		dir = `C:\docs`
	}

	c := newTestConverter(t)
	result, err := c.Convert(context.Background(), Input{
		Markdown:  "![logo](img/logo.png)\n\nSee [next](next.md).",
		SourceDir: dir,
	})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if strings.Count(result.HTML, "file://") != 2 {
		t.Errorf("expected image and link resolved, got:\n%s", result.HTML)
	}
	if !strings.Contains(result.HTML, "<br>") {
		t.Errorf("paragraph break missing after link resolution:\n%s", result.HTML)
	}
}

func TestConverter_Convert_Concurrent(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t, WithHighlighting(""))
	input := "# Same\n\n# Same\n\n```go\nfunc f() {}\n```\n\nText."

	want, err := c.Convert(context.Background(), Input{Markdown: input})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Convert(context.Background(), Input{Markdown: input})
			if err != nil {
				t.Errorf("Convert() unexpected error: %v", err)
				return
			}
			if got.HTML != want.HTML {
				t.Error("concurrent Convert() output differs")
			}
		}()
	}
	wg.Wait()
}

// ---------------------------------------------------------------------------
// Package-level entry point
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		got, err := Convert("")
		if err != nil || got != "" {
			t.Errorf("Convert(\"\") = %q, %v; want \"\", nil", got, err)
		}
	})

	t.Run("fenced code styled as block only", func(t *testing.T) {
		t.Parallel()

		got, err := Convert("```\ncode here\n```")
		if err != nil {
			t.Fatalf("Convert() unexpected error: %v", err)
		}
		if !strings.Contains(got, `<pre style="background-color: #f5f5f5;`) {
			t.Errorf("code block not styled:\n%s", got)
		}
		if strings.Contains(got, `<code style=`) {
			t.Errorf("inline code style applied to code block:\n%s", got)
		}
	})

	t.Run("table", func(t *testing.T) {
		t.Parallel()

		got, err := Convert("| a | b |\n|---|---|\n| 1 | 2 |")
		if err != nil {
			t.Fatalf("Convert() unexpected error: %v", err)
		}
		for _, want := range []string{
			`<table style="border-collapse: collapse;`,
			`<th style="border: 1pt solid #000; padding: 3pt; background-color: #f0f0f0; font-weight: bold;">a</th>`,
			`<td style="border: 1pt solid #000; padding: 3pt;">1</td>`,
		} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %q in:\n%s", want, got)
			}
		}
	})
}
