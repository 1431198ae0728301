package md2word

import (
	"errors"

	"github.com/alnah/go-md2word/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrHTMLConversion        = pipeline.ErrHTMLConversion
	ErrUnknownHighlightStyle = pipeline.ErrUnknownHighlightStyle
	ErrInputTooLarge         = errors.New("markdown input too large")
)
