package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Inline styles injected into rendered tags. Word processors drop linked and
// embedded stylesheets on paste, so every declaration travels on the tag.
const (
	ParagraphStyle     = "margin: 0 0 12pt 0; line-height: 1.15; padding: 0;"
	LastParagraphStyle = "margin: 0; line-height: 1.15; padding: 0;"
	ListStyle          = "margin: 0 0 6pt 0; padding-left: 20pt;"
	ListItemStyle      = "margin: 0 0 3pt 0;"
	CodeBlockStyle     = "background-color: #f5f5f5; padding: 6pt; margin: 6pt 0; border: 1pt solid #ddd; font-family: 'Courier New', monospace; font-size: 10pt;"
	InlineCodeStyle    = "background-color: #f5f5f5; padding: 1pt 2pt; font-family: 'Courier New', monospace; font-size: 10pt;"
	BlockquoteStyle    = "margin: 6pt 0 6pt 20pt; padding-left: 6pt; border-left: 3pt solid #ddd; font-style: italic;"
	TableStyle         = "border-collapse: collapse; margin: 6pt 0; width: 100%;"
	TableHeaderStyle   = "border: 1pt solid #000; padding: 3pt; background-color: #f0f0f0; font-weight: bold;"
	TableCellStyle     = "border: 1pt solid #000; padding: 3pt;"
)

// HeadingStyles holds the styles of h1 through h6.
var HeadingStyles = [6]string{
	"font-size: 18pt; font-weight: bold; margin: 12pt 0 6pt 0;",
	"font-size: 16pt; font-weight: bold; margin: 10pt 0 5pt 0;",
	"font-size: 14pt; font-weight: bold; margin: 8pt 0 4pt 0;",
	"font-size: 13pt; font-weight: bold; margin: 6pt 0 3pt 0;",
	"font-size: 12pt; font-weight: bold; margin: 4pt 0 2pt 0;",
	"font-size: 12pt; font-weight: bold; margin: 4pt 0 2pt 0;",
}

// BreakMarker is the explicit line break placed between adjacent paragraphs.
const BreakMarker = "<br>"

// styledParagraphOpen is the opening paragraph tag every break is followed by.
const styledParagraphOpen = `<p style="` + ParagraphStyle + `">`

// paragraphBreak separates two paragraphs.
const paragraphBreak = "</p>\n" + BreakMarker + "\n" + styledParagraphOpen

// Precompiled regex patterns for performance.
var (
	// Closing paragraph directly followed by another paragraph
	adjacentParagraphs = regexp.MustCompile(`</p>\s*<p(?:\s+style="[^"]*")?>`)

	// Closing paragraph followed by a run of two or more break markers
	stackedBreaks = regexp.MustCompile(`</p>(?:\s*<br\s*/?>){2,}\s*<p(?:\s+style="[^"]*")?>`)

	// Last paragraph of the document, optionally followed by the container's close
	lastParagraph = regexp.MustCompile(
		`<p style="` + regexp.QuoteMeta(ParagraphStyle) + `">((?:[^<]|<[^/]|</[^p]|</p[^>])*)</p>(\s*(?:</div>\s*)?)$`)

	// Fenced code block, possibly with a language class
	fencedCode = regexp.MustCompile(`(?s)<pre><code((?:\s+class="[^"]*")?)>(.*?)</code></pre>`)

	// Whole pre blocks are matched first so their code tags are skipped
	inlineCode = regexp.MustCompile(`(?s)<pre\b[^>]*>.*?</pre>|<code>(.*?)</code>`)

	// Style attribute in an attribute list
	styleAttr = regexp.MustCompile(`(?:^|\s)style=`)
)

// HTMLAnnotator rewrites rendered HTML into self-contained styled HTML.
type HTMLAnnotator interface {
	Annotate(ctx context.Context, htmlContent string) (string, error)
}

// rewriteRule is one step of the annotation pass.
type rewriteRule struct {
	name  string
	apply func(string) string
}

// WordStyler applies the word-processor rewrite rules in order.
// Rules that find nothing to match leave the document unchanged.
// A tag that already carries a style attribute is never restyled, which
// makes the whole pass idempotent.
type WordStyler struct {
	rules []rewriteRule
}

// NewWordStyler creates a WordStyler with the full rule sequence.
func NewWordStyler() *WordStyler {
	return &WordStyler{rules: wordRules()}
}

// Annotate runs every rule over htmlContent.
func (s *WordStyler) Annotate(ctx context.Context, htmlContent string) (string, error) {
	if htmlContent == "" {
		return "", nil
	}
	for _, rule := range s.rules {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		htmlContent = rule.apply(htmlContent)
	}
	return htmlContent, nil
}

// RuleNames lists the rules in application order.
func (s *WordStyler) RuleNames() []string {
	names := make([]string, len(s.rules))
	for i, rule := range s.rules {
		names[i] = rule.name
	}
	return names
}

// wordRules returns the ordered rule sequence. Later rules see the output of
// earlier ones: break collapsing needs the inserted breaks, and inline code
// styling needs fenced blocks already styled.
func wordRules() []rewriteRule {
	headings := make([]tagRule, len(HeadingStyles))
	for i, style := range HeadingStyles {
		headings[i] = newTagRule("h"+string(rune('1'+i)), style, true)
	}

	return []rewriteRule{
		{"headings", func(doc string) string {
			for _, h := range headings {
				doc = h.apply(doc)
			}
			return doc
		}},
		{"paragraphs", newTagRule("p", ParagraphStyle, false).apply},
		{"paragraph-breaks", func(doc string) string {
			return adjacentParagraphs.ReplaceAllLiteralString(doc, paragraphBreak)
		}},
		{"collapse-breaks", func(doc string) string {
			return stackedBreaks.ReplaceAllLiteralString(doc, paragraphBreak)
		}},
		{"last-paragraph", func(doc string) string {
			return lastParagraph.ReplaceAllString(doc, `<p style="`+LastParagraphStyle+`">${1}</p>${2}`)
		}},
		{"lists", chainTagRules(
			newTagRule("ul", ListStyle, false),
			newTagRule("ol", ListStyle, false),
		)},
		{"list-items", newTagRule("li", ListItemStyle, false).apply},
		{"code-blocks", func(doc string) string {
			return fencedCode.ReplaceAllString(doc, `<pre style="`+CodeBlockStyle+`"><code${1}>${2}</code></pre>`)
		}},
		{"inline-code", styleInlineCode},
		{"blockquotes", newTagRule("blockquote", BlockquoteStyle, false).apply},
		{"tables", newTagRule("table", TableStyle, false).apply},
		{"table-headers", newTagRule("th", TableHeaderStyle, true).apply},
		{"table-cells", newTagRule("td", TableCellStyle, true).apply},
	}
}

// styleInlineCode styles code spans outside pre blocks.
func styleInlineCode(doc string) string {
	return inlineCode.ReplaceAllStringFunc(doc, func(match string) string {
		if strings.HasPrefix(match, "<pre") {
			return match
		}
		inner := strings.TrimSuffix(strings.TrimPrefix(match, "<code>"), "</code>")
		return `<code style="` + InlineCodeStyle + `">` + inner + `</code>`
	})
}

// tagRule injects a style attribute into every opening tag of one element
// that is later closed. Existing attributes such as heading ids or cell
// alignment are kept.
type tagRule struct {
	tag   string
	style string
	open  *regexp.Regexp
	// sameLine requires the closing tag on the opening tag's line.
	sameLine bool
}

func newTagRule(tag, style string, sameLine bool) tagRule {
	return tagRule{
		tag:      tag,
		style:    style,
		open:     regexp.MustCompile(`<` + tag + `((?:\s+[\w:-]+(?:="[^"]*")?)*)\s*>`),
		sameLine: sameLine,
	}
}

func (r tagRule) apply(doc string) string {
	matches := r.open.FindAllStringSubmatchIndex(doc, -1)
	if len(matches) == 0 {
		return doc
	}

	closing := "</" + r.tag + ">"
	lastClose := strings.LastIndex(doc, closing)

	var b strings.Builder
	b.Grow(len(doc) + len(matches)*(len(r.style)+len(` style=""`)))
	prev := 0
	for _, m := range matches {
		attrs := doc[m[2]:m[3]]
		if styleAttr.MatchString(attrs) || !r.closed(doc, m[1], lastClose, closing) {
			continue
		}
		b.WriteString(doc[prev:m[0]])
		b.WriteString("<" + r.tag + attrs + ` style="` + r.style + `">`)
		prev = m[1]
	}
	b.WriteString(doc[prev:])
	return b.String()
}

// closed reports whether the tag opened before offset is closed afterwards.
func (r tagRule) closed(doc string, offset, lastClose int, closing string) bool {
	if lastClose < offset {
		return false
	}
	if !r.sameLine {
		return true
	}
	line := doc[offset:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.Contains(line, closing)
}

func chainTagRules(rules ...tagRule) func(string) string {
	return func(doc string) string {
		for _, r := range rules {
			doc = r.apply(doc)
		}
		return doc
	}
}
