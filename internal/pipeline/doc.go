// Package pipeline implements the Markdown to word-processor HTML pipeline.
//
// Stages, in order:
//   - Markdown preprocessing (line ending normalization)
//   - Segmentation into paragraph units and per-unit rendering via Goldmark
//   - Optional resolution of relative links against a source directory
//   - Style annotation: ordered rewrite rules injecting inline styles
//
// The annotated fragment carries no stylesheet reference, so it survives a
// paste into a document editor. PlainText derives the text/plain clipboard
// alternative from it.
package pipeline
