// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package model

import (
	"context"

	"github.com/pagegrid/pagegrid/internal/model1"
)

// Grid is the presentation model of a sortable paged collection.
type Grid[T, F any] struct {
	rows         *Collection[T, F]
	columns      model1.Columns
	emptyMessage string
}

// NewGrid returns a grid over the collection. Nil columns fall back on the
// collection options.
func NewGrid[T, F any](rows *Collection[T, F], columns model1.Columns) *Grid[T, F] {
	opts := rows.Options()
	if columns == nil {
		columns = opts.Columns
	}

	return &Grid[T, F]{
		rows:         rows,
		columns:      columns,
		emptyMessage: opts.EmptyMessage,
	}
}

// Rows returns the underlying collection.
func (g *Grid[T, F]) Rows() *Collection[T, F] {
	return g.rows
}

// Columns returns all the grid columns.
func (g *Grid[T, F]) Columns() model1.Columns {
	return g.columns
}

// VisibleColumns returns the columns whose predicate currently holds.
func (g *Grid[T, F]) VisibleColumns() model1.Columns {
	return g.columns.Visible()
}

// EmptyMessage returns the empty text when nothing is loading and no rows
// are buffered. The boolean is false whenever no message should show.
func (g *Grid[T, F]) EmptyMessage() (string, bool) {
	st := g.rows.State()
	if st.Updating || st.Len != 0 {
		return "", false
	}

	return g.emptyMessage, true
}

// SortState returns the indicator state of a sortable column.
func (g *Grid[T, F]) SortState(col model1.Column) model1.SortState {
	return col.SortState(g.rows.SortDescriptor())
}

// SortIndicatorClass returns "<key> asc", "<key> desc" or "<key> asc-desc".
// Non sortable columns get no class.
func (g *Grid[T, F]) SortIndicatorClass(col model1.Column) (string, bool) {
	if !col.Sortable() {
		return "", false
	}

	return col.SortKey + " " + g.SortState(col).Class(), true
}

// ToggleSort sorts ascending on the column, or descending if it is already
// the ascending ordering. It reloads the rows and returns false for non
// sortable columns.
func (g *Grid[T, F]) ToggleSort(ctx context.Context, col model1.Column) bool {
	if !col.Sortable() {
		return false
	}

	next := model1.Ascending(col.SortKey)
	if g.rows.SortDescriptor() == next {
		next = model1.Descending(col.SortKey)
	}
	g.rows.SetSortDescriptor(ctx, next)

	return true
}
