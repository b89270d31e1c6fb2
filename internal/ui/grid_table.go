// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/pagegrid/pagegrid/internal/model"
	"github.com/pagegrid/pagegrid/internal/model1"
)

const (
	// LoadingMessage shows while a page is in flight.
	LoadingMessage = "Loading..."

	gridTitleFmt      = " <%s>[%d%s] "
	gridTitleSortFmt  = " <%s>[%d%s] (%s) "
	gridTitleErrorFmt = " <%s>[%d] [red::b]%s[-::-] "
)

// GridTable renders a sortable paged grid. Selecting the last row fetches
// the next page.
type GridTable struct {
	*tview.Table

	name      string
	grid      *model.Grid[model1.Row, model1.Filter]
	cell      model1.CellFunc
	wide      *Toggle
	actions   *KeyActions
	focus     int
	lastErr   error
	rendering bool
	queue     func(func())
	run       func(func())
	ctx       context.Context
	mx        sync.RWMutex
}

// NewGridTable returns a new grid table.
func NewGridTable(p GridParams) (*GridTable, error) {
	if p.Rows == nil {
		return nil, fmt.Errorf("%w: no rows", model.ErrInvalidOptions)
	}
	if p.Cell == nil {
		p.Cell = model1.DefaultCell
	}
	if p.Title == "" {
		p.Title = GridComponent
	}

	t := GridTable{
		Table:   tview.NewTable(),
		name:    p.Title,
		grid:    model.NewGrid(p.Rows, p.Columns),
		cell:    p.Cell,
		wide:    p.Wide,
		actions: NewKeyActions(),
		queue:   func(f func()) { f() },
		run:     func(f func()) { go f() },
		ctx:     context.Background(),
	}

	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetBorderColor(tcell.ColorWhite)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetFixed(1, 0)
	t.SetSelectable(true, false)

	return &t, nil
}

// Name returns the component name.
func (t *GridTable) Name() string {
	return t.name
}

// Grid returns the view-model.
func (t *GridTable) Grid() *model.Grid[model1.Row, model1.Filter] {
	return t.grid
}

// SetQueueFn sets how updates are scheduled on the ui thread.
func (t *GridTable) SetQueueFn(fn func(func())) {
	t.mx.Lock()
	defer t.mx.Unlock()

	t.queue = fn
}

// Init initializes the grid table.
func (t *GridTable) Init(ctx context.Context) error {
	t.mx.Lock()
	t.ctx = ctx
	t.mx.Unlock()

	t.SetTitle(fmt.Sprintf(gridTitleFmt, t.name, 0, ""))
	t.SetInputCapture(t.keyboard)
	t.SetSelectionChangedFunc(t.selectionChanged)
	t.bindKeys()
	t.render()

	return nil
}

// Start listens to the rows and catches up on loads finished while stopped.
func (t *GridTable) Start() {
	t.grid.Rows().AddListener(t)
	t.render()
}

// Stop stops listening. Fetches in flight run to completion and are only
// cancelled with the init context.
func (t *GridTable) Stop() {
	t.grid.Rows().RemoveListener(t)
}

// Actions returns the key actions.
func (t *GridTable) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints for key bindings.
func (t *GridTable) Hints() MenuHints {
	return t.actions.Hints()
}

// FocusedColumn returns the column whose header has focus.
func (t *GridTable) FocusedColumn() (model1.Column, bool) {
	cc := t.grid.VisibleColumns()

	t.mx.RLock()
	defer t.mx.RUnlock()
	if t.focus < 0 || t.focus >= len(cc) {
		return model1.Column{}, false
	}

	return cc[t.focus], true
}

// CollectionChanged implements model.CollectionListener.
func (t *GridTable) CollectionChanged() {
	if t.grid.Rows().Updating() {
		t.mx.Lock()
		t.lastErr = nil
		t.mx.Unlock()
	}
	t.enqueue(t.render)
}

// CollectionLoadFailed implements model.CollectionListener.
func (t *GridTable) CollectionLoadFailed(err error) {
	t.mx.Lock()
	t.lastErr = err
	t.mx.Unlock()
}

// SortChanged implements model.CollectionListener.
func (t *GridTable) SortChanged(model1.SortDescriptor) {
	t.enqueue(t.render)
}

func (t *GridTable) enqueue(f func()) {
	t.mx.RLock()
	q := t.queue
	t.mx.RUnlock()

	q(f)
}

func (t *GridTable) context() context.Context {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.ctx
}

func (t *GridTable) bindKeys() {
	t.actions.Bulk(KeyMap{
		KeyS:           NewKeyAction("Sort", t.sortCmd, true),
		tcell.KeyCtrlS: NewKeyAction("Sort", t.sortCmd, false),
		tcell.KeyLeft:  NewKeyAction("Prev Column", t.prevColCmd, false),
		KeyH:           NewKeyAction("Prev Column", t.prevColCmd, true),
		tcell.KeyRight: NewKeyAction("Next Column", t.nextColCmd, false),
		KeyL:           NewKeyAction("Next Column", t.nextColCmd, true),
		tcell.KeyCtrlR: NewKeyAction("Refresh", t.refreshCmd, true),
	})
	if t.wide != nil {
		t.actions.Add(KeyW, NewKeyAction("Wide", t.wideCmd, true))
	}
}

func (t *GridTable) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, col := t.GetSelection()
	rowCount := t.GetRowCount()

	if evt.Key() == tcell.KeyRune {
		switch evt.Rune() {
		case 'j':
			if row < rowCount-1 {
				t.Select(row+1, col)
			}
			return nil
		case 'k':
			if row > 1 {
				t.Select(row-1, col)
			}
			return nil
		case 'g':
			if rowCount > 1 {
				t.Select(1, col)
			}
			return nil
		case 'G':
			if rowCount > 1 {
				t.Select(rowCount-1, col)
			}
			return nil
		}
	}

	out, _ := t.actions.Handle(evt)

	return out
}

func (t *GridTable) selectionChanged(row, _ int) {
	t.mx.RLock()
	rendering := t.rendering
	t.mx.RUnlock()
	if rendering {
		return
	}

	st := t.grid.Rows().State()
	if st.Done || st.Updating || st.Len == 0 || row != st.Len {
		return
	}
	ctx := t.context()
	t.run(func() { t.grid.Rows().LoadNext(ctx) })
}

func (t *GridTable) sortCmd(*tcell.EventKey) *tcell.EventKey {
	col, ok := t.FocusedColumn()
	if !ok || !col.Sortable() {
		return nil
	}
	ctx := t.context()
	t.run(func() { t.grid.ToggleSort(ctx, col) })

	return nil
}

func (t *GridTable) refreshCmd(*tcell.EventKey) *tcell.EventKey {
	ctx := t.context()
	t.run(func() { t.grid.Rows().Refresh(ctx) })

	return nil
}

func (t *GridTable) wideCmd(*tcell.EventKey) *tcell.EventKey {
	t.wide.Flip()
	t.render()

	return nil
}

func (t *GridTable) prevColCmd(*tcell.EventKey) *tcell.EventKey {
	t.moveFocus(-1)
	return nil
}

func (t *GridTable) nextColCmd(*tcell.EventKey) *tcell.EventKey {
	t.moveFocus(1)
	return nil
}

func (t *GridTable) moveFocus(delta int) {
	n := len(t.grid.VisibleColumns())
	if n == 0 {
		return
	}

	t.mx.Lock()
	t.focus = (t.focus + delta + n) % n
	t.mx.Unlock()
	t.render()
}

// render rebuilds the table from the view-model. It must run on the ui
// thread.
func (t *GridTable) render() {
	cc := t.grid.VisibleColumns()
	st := t.grid.Rows().State()
	rows := t.grid.Rows().Rows()

	t.mx.Lock()
	t.rendering = true
	if t.focus >= len(cc) {
		t.focus = max(len(cc)-1, 0)
	}
	focus, lastErr := t.focus, t.lastErr
	t.mx.Unlock()
	defer func() {
		t.mx.Lock()
		t.rendering = false
		t.mx.Unlock()
	}()

	sel, _ := t.GetSelection()
	t.Clear()
	t.buildHeader(cc, focus)
	for i, row := range rows {
		t.buildRow(i+1, row, cc)
	}

	next := len(rows) + 1
	if msg, ok := t.grid.EmptyMessage(); ok {
		t.SetCell(next, 0, infoCell(msg))
		next++
	}
	if st.Updating {
		t.SetCell(next, 0, infoCell(LoadingMessage))
	}

	t.updateTitle(st, lastErr)

	switch {
	case len(rows) == 0:
	case sel < 1:
		t.Select(1, 0)
	case sel > len(rows):
		t.Select(len(rows), 0)
	default:
		t.Select(sel, 0)
	}
}

func (t *GridTable) buildHeader(cc model1.Columns, focus int) {
	for i, col := range cc {
		label := col.Label
		if col.Sortable() {
			label += " " + t.grid.SortState(col).Glyph()
		}
		cell := tview.NewTableCell(label)
		cell.SetTextColor(tcell.ColorYellow)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(col.Align)
		cell.SetExpansion(1)
		cell.SetSelectable(false)
		if t.grid.SortState(col) != model1.Unsorted {
			cell.SetAttributes(tcell.AttrBold)
		}
		if i == focus {
			cell.SetAttributes(cell.Attributes | tcell.AttrReverse)
		}
		t.SetCell(0, i, cell)
	}
}

func (t *GridTable) buildRow(r int, row model1.Row, cc model1.Columns) {
	for i, col := range cc {
		cell := tview.NewTableCell(t.cell(row, col))
		cell.SetTextColor(tcell.ColorWhite)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(col.Align)
		cell.SetExpansion(1)
		if col.Width > 0 {
			cell.SetMaxWidth(col.Width)
		}
		if i == 0 {
			cell.SetReference(row.ID)
		}
		t.SetCell(r, i, cell)
	}
}

func (t *GridTable) updateTitle(st model.State, err error) {
	more := ""
	if !st.Done {
		more = "+"
	}
	switch {
	case err != nil:
		t.SetTitle(fmt.Sprintf(gridTitleErrorFmt, t.name, st.Len, tview.Escape(err.Error())))
	case st.Sort.IsBlank():
		t.SetTitle(fmt.Sprintf(gridTitleFmt, t.name, st.Len, more))
	default:
		t.SetTitle(fmt.Sprintf(gridTitleSortFmt, t.name, st.Len, more, st.Sort))
	}
}

func infoCell(msg string) *tview.TableCell {
	cell := tview.NewTableCell(msg)
	cell.SetTextColor(tcell.ColorGray)
	cell.SetAlign(tview.AlignLeft)
	cell.SetSelectable(false)

	return cell
}
