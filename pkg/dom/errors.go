package dom

import "errors"

var (
	// ErrNoRoot is returned when the document has no element matching the root selector
	ErrNoRoot = errors.New("render root not found")

	// ErrParsingDocument is returned when the HTML input cannot be parsed
	ErrParsingDocument = errors.New("failed to parse html document")

	// ErrRenderingDocument is returned when the document cannot be serialized
	ErrRenderingDocument = errors.New("failed to render html document")
)
