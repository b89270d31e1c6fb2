package render

import (
	"github.com/pagegrid/pagegrid/internal/model"
	"github.com/pagegrid/pagegrid/internal/model1"
)

// Header describes a grid header cell.
type Header struct {
	Label    string
	Class    string
	Sortable bool
	State    model1.SortState
	Width    int
	Align    int
}

// Glyph returns the sort indicator of a sortable header.
func (h Header) Glyph() string {
	if !h.Sortable {
		return ""
	}

	return h.State.Glyph()
}

// BodyRow represents a rendered grid row.
type BodyRow struct {
	ID    string
	Cells []string
}

// Document is a snapshot of a grid ready to be rendered.
type Document struct {
	Title   string
	Sort    string
	Headers []Header
	Rows    []BodyRow
	Empty   string
	IsEmpty bool
	Loading bool
	More    bool
}

// NewDocument snapshots the grid visible columns and buffered rows.
func NewDocument(title string, g *model.Grid[model1.Row, model1.Filter], cell model1.CellFunc) Document {
	if cell == nil {
		cell = model1.DefaultCell
	}
	st := g.Rows().State()
	cc := g.VisibleColumns()

	d := Document{
		Title:   title,
		Sort:    st.Sort.String(),
		Headers: make([]Header, 0, len(cc)),
		Loading: st.Updating,
		More:    !st.Done,
	}
	d.Empty, d.IsEmpty = g.EmptyMessage()
	d.IsEmpty = d.IsEmpty && d.Empty != ""

	for _, col := range cc {
		h := Header{
			Label:    col.Label,
			Class:    col.CSSClass,
			Sortable: col.Sortable(),
			Width:    col.Width,
			Align:    col.Align,
		}
		if class, ok := g.SortIndicatorClass(col); ok {
			h.State = g.SortState(col)
			h.Class = joinClass(class, col.CSSClass)
		}
		d.Headers = append(d.Headers, h)
	}

	rows := g.Rows().Rows()
	d.Rows = make([]BodyRow, 0, len(rows))
	for _, row := range rows {
		r := BodyRow{ID: row.ID, Cells: make([]string, 0, len(cc))}
		for _, col := range cc {
			r.Cells = append(r.Cells, cell(row, col))
		}
		d.Rows = append(d.Rows, r)
	}

	return d
}

func joinClass(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
