package render

import (
	"embed"
	"fmt"
	"io"

	"github.com/google/safehtml/template"
)

const gridTemplate = "grid.html"

//go:embed templates/*
var templateFS embed.FS

// HTMLRenderer renders documents as html pages.
type HTMLRenderer struct {
	tpl *template.Template
}

// NewHTMLRenderer parses the embedded grid template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tfs := template.TrustedFSFromEmbed(templateFS)
	tpl, err := template.New(gridTemplate).ParseFS(tfs, "templates/"+gridTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse grid template: %w", err)
	}

	return &HTMLRenderer{tpl: tpl}, nil
}

// Render writes the document to w.
func (r *HTMLRenderer) Render(w io.Writer, d Document) error {
	return r.tpl.Execute(w, d)
}
