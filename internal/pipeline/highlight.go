package pipeline

import (
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ErrUnknownHighlightStyle indicates the highlight style is not registered.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// ValidateHighlightStyle checks that name is a registered chroma style.
// An empty name selects DefaultHighlightStyle and is valid.
func ValidateHighlightStyle(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := styles.Registry[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, name)
	}
	return nil
}

// HighlightStyles lists the registered chroma style names.
func HighlightStyles() []string {
	return styles.Names()
}

// codeBlockWrapper emits the same <pre><code class="language-x"> shell goldmark
// uses for plain fenced code, so highlighted blocks go through the code block
// rule unchanged. Chroma's own background is dropped in favour of that rule.
type codeBlockWrapper struct {
	language string
}

func (w codeBlockWrapper) Start(code bool, _ string) string {
	if !code {
		return "<pre>"
	}
	if w.language == "" {
		return "<pre><code>"
	}
	return `<pre><code class="language-` + html.EscapeString(w.language) + `">`
}

func (w codeBlockWrapper) End(code bool) string {
	if !code {
		return "</pre>"
	}
	return "</code></pre>"
}

// newHighlighting returns a highlighting extension that writes token colours
// as inline style attributes. Class-based output would need a stylesheet,
// which does not survive a paste into a document editor.
func newHighlighting(style string) goldmark.Extender {
	if style == "" {
		style = DefaultHighlightStyle
	}
	return highlighting.NewHighlighting(
		highlighting.WithStyle(style),
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(false),
		),
		highlighting.WithCodeBlockOptions(func(ctx highlighting.CodeBlockContext) []chromahtml.Option {
			language, _ := ctx.Language()
			return []chromahtml.Option{
				chromahtml.WithPreWrapper(codeBlockWrapper{language: string(language)}),
			}
		}),
	)
}
