package render

import (
	"fmt"
	"io"
)

// Error represents a render error.
type Error string

// ErrUnknownFormat flags an unsupported output format.
const ErrUnknownFormat = Error("unknown format")

// Error returns the error text.
func (e Error) Error() string {
	return string(e)
}

// Renderer writes documents.
type Renderer interface {
	Render(io.Writer, Document) error
}

// For returns the renderer for an output format, html or text.
func For(format string) (Renderer, error) {
	switch format {
	case "html":
		r, err := NewHTMLRenderer()
		if err != nil {
			return nil, err
		}
		return r, nil
	case "text", "txt", "":
		return NewTextRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
