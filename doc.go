// Package md2word converts Markdown into inline-styled HTML that keeps its
// look when pasted into a word processor.
//
// # Quick Start
//
//	conv, err := md2word.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2word.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// For a one-off conversion with defaults, use the package-level Convert.
//
// # Conversion Pipeline
//
//  1. Line endings are normalized.
//  2. The text is split on blank lines into paragraph units; each unit is
//     rendered with its own Goldmark parser (tables, fenced code, heading
//     anchors) and the fragments are joined inside a base-font container.
//  3. Ordered rewrite rules inject inline styles into headings, paragraphs,
//     lists, code, blockquotes and tables, insert break markers between
//     adjacent paragraphs and zero the trailing margin of the last one.
//
// The result carries no stylesheet reference. Result.Text holds the
// plain-text alternative for clipboards that refuse rich text.
//
// Empty or whitespace-only input is not an error: it yields an empty Result.
//
// # Configuration
//
//	conv, err := md2word.NewConverter(
//	    md2word.WithHighlighting("monokai"),
//	    md2word.WithRawHTML(true),
//	    md2word.WithMaxInputSize(1 << 20),
//	)
//
// # Concurrency
//
// A Converter holds no parser state and is safe for concurrent use; parsers
// are created per paragraph unit and discarded.
package md2word
