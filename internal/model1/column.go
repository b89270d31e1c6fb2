package model1

// Column describes a grid column.
type Column struct {
	// SortKey is sent to the source when sorting on this column. Blank means
	// the column is not sortable.
	SortKey string

	// Label is the header text.
	Label string

	// VisibleWhen hides the column when it returns false.
	VisibleWhen func() bool

	// CSSClass is an extra class added to the header cell.
	CSSClass string

	// Width caps the rendered cell width. Zero means unbounded.
	Width int

	// Field names the row field displayed in this column.
	Field string

	// Align is a tview alignment.
	Align int
}

// Sortable returns true if the column can be sorted.
func (c Column) Sortable() bool {
	return c.SortKey != ""
}

// Visible returns true unless the visibility predicate says otherwise.
func (c Column) Visible() bool {
	return c.VisibleWhen == nil || c.VisibleWhen()
}

// SortState returns the column indicator state for the given descriptor.
func (c Column) SortState(s SortDescriptor) SortState {
	switch s {
	case Ascending(c.SortKey):
		return SortedAsc
	case Descending(c.SortKey):
		return SortedDesc
	default:
		return Unsorted
	}
}

// Columns represents a grid header.
type Columns []Column

// Visible returns the currently visible columns.
func (cc Columns) Visible() Columns {
	out := make(Columns, 0, len(cc))
	for _, c := range cc {
		if c.Visible() {
			out = append(out, c)
		}
	}
	return out
}

// SortKeys returns the set of sortable keys.
func (cc Columns) SortKeys() map[string]struct{} {
	kk := make(map[string]struct{}, len(cc))
	for _, c := range cc {
		if c.Sortable() {
			kk[c.SortKey] = struct{}{}
		}
	}
	return kk
}

// IndexOf returns the index of the column with the given label.
func (cc Columns) IndexOf(label string) (int, bool) {
	for i, c := range cc {
		if c.Label == label {
			return i, true
		}
	}
	return -1, false
}

// Fields returns the row fields shown by the columns.
func (cc Columns) Fields() []string {
	ff := make([]string, 0, len(cc))
	for _, c := range cc {
		ff = append(ff, c.Field)
	}
	return ff
}
