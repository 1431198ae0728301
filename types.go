package md2word

// Input is the content of one conversion.
type Input struct {
	Markdown string
	// SourceDir resolves relative image and link references to file:// URLs.
	// Leave empty for text that does not come from a file.
	SourceDir string
}

// Result is the output of one conversion.
type Result struct {
	HTML       string // styled fragment, empty for blank input
	Text       string // plain-text alternative of HTML
	Paragraphs int    // paragraph units rendered
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	highlight      bool
	highlightStyle string
	rawHTML        bool
	maxInputSize   int
}

// DefaultMaxInputSize is the input limit when none is specified.
const DefaultMaxInputSize = 5 << 20

// WithHighlighting enables syntax colouring of fenced code blocks that name
// a language. An empty style selects the default one.
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}

// WithRawHTML passes raw HTML found in the Markdown through to the output.
// Off by default: raw HTML is replaced with a comment.
func WithRawHTML(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.rawHTML = enabled
	}
}

// WithMaxInputSize sets the largest accepted input in bytes.
// Panics if n <= 0 (programmer error).
func WithMaxInputSize(n int) Option {
	if n <= 0 {
		panic("md2word: WithMaxInputSize size must be positive")
	}
	return func(c *Converter) {
		c.cfg.maxInputSize = n
	}
}
