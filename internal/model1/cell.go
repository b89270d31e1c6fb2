package model1

// CellFunc renders the content of a grid cell. It plays the part of a row
// template.
type CellFunc func(Row, Column) string

// DefaultCell shows the row field named by the column.
func DefaultCell(row Row, col Column) string {
	v, ok := row.Fields[col.Field]
	if !ok {
		return NAValue
	}

	return v
}
