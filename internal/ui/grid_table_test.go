// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/pagegrid/pagegrid/internal/dao"
	"github.com/pagegrid/pagegrid/internal/model"
	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridTableHeader(t *testing.T) {
	gt, _ := newGridTable(t, 5, 10)
	gt.grid.Rows().Refresh(context.Background())

	assert.Equal(t, []string{"NAME ▲", "CPU ⇅"}, headers(gt))
	assert.Equal(t, 6, gt.GetRowCount())
	assert.Equal(t, "a1", gt.GetCell(1, 0).Text)
	assert.Equal(t, "r1", gt.GetCell(1, 0).GetReference())
	assert.Equal(t, " <people>[5] (name-asc) ", gt.GetTitle())
}

func TestGridTableEmptyMessage(t *testing.T) {
	gt, _ := newGridTable(t, 0, 10)
	gt.grid.Rows().Refresh(context.Background())

	assert.Equal(t, 2, gt.GetRowCount())
	assert.Equal(t, "Nothing here", gt.GetCell(1, 0).Text)
}

func TestGridTableLoading(t *testing.T) {
	var seen string
	gt, f := newGridTable(t, 3, 10)
	f.before = func() { seen = gt.GetCell(1, 0).Text }

	gt.grid.Rows().Refresh(context.Background())
	assert.Equal(t, LoadingMessage, seen)
	assert.Equal(t, 4, gt.GetRowCount())
}

func TestGridTableSortKeys(t *testing.T) {
	gt, f := newGridTable(t, 3, 10)
	gt.grid.Rows().Refresh(context.Background())

	gt.keyboard(runeKey('s'))
	assert.Equal(t, model1.Descending("name"), gt.grid.Rows().SortDescriptor())
	assert.Equal(t, []string{"NAME ▼", "CPU ⇅"}, headers(gt))
	assert.Equal(t, "a3", gt.GetCell(1, 0).Text)

	gt.keyboard(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	gt.keyboard(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	assert.Equal(t, model1.Ascending("cpu"), gt.grid.Rows().SortDescriptor())
	assert.Equal(t, []string{"NAME ⇅", "CPU ▲"}, headers(gt))
	assert.Equal(t, 3, f.calls)
}

func TestGridTableUnsortableColumn(t *testing.T) {
	gt, f := newGridTable(t, 3, 10)
	gt.grid.Rows().Refresh(context.Background())

	gt.keyboard(runeKey('w'))
	assert.Equal(t, []string{"NAME ▲", "CPU ⇅", "NOTES"}, headers(gt))

	gt.keyboard(runeKey('h'))
	col, ok := gt.FocusedColumn()
	require.True(t, ok)
	assert.Equal(t, "NOTES", col.Label)

	gt.keyboard(runeKey('s'))
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, model1.Ascending("name"), gt.grid.Rows().SortDescriptor())

	gt.keyboard(runeKey('w'))
	assert.Equal(t, []string{"NAME ▲", "CPU ⇅"}, headers(gt))
	col, _ = gt.FocusedColumn()
	assert.Equal(t, "CPU", col.Label)
}

func TestGridTableInfiniteScroll(t *testing.T) {
	gt, f := newGridTable(t, 5, 2)
	gt.grid.Rows().Refresh(context.Background())
	assert.Equal(t, 3, gt.GetRowCount())
	assert.Equal(t, " <people>[2+] (name-asc) ", gt.GetTitle())

	gt.Select(1, 0)
	assert.Equal(t, 1, f.calls)

	gt.keyboard(runeKey('j'))
	assert.Equal(t, 2, f.calls)
	assert.Equal(t, 5, gt.GetRowCount())

	gt.keyboard(runeKey('G'))
	assert.Equal(t, 3, f.calls)
	assert.Equal(t, 6, gt.GetRowCount())
	assert.True(t, gt.grid.Rows().Done())

	gt.keyboard(runeKey('g'))
	gt.keyboard(runeKey('G'))
	assert.Equal(t, 3, f.calls)
	assert.Equal(t, []int{0, 2, 4}, f.offsets)
}

func TestGridTableLoadFailed(t *testing.T) {
	gt, f := newGridTable(t, 5, 2)
	f.err = errors.New("boom")
	gt.grid.Rows().Refresh(context.Background())

	assert.Equal(t, " <people>[0] [red::b]boom[-::-] ", gt.GetTitle())
	assert.Equal(t, "Nothing here", gt.GetCell(1, 0).Text)

	f.err = nil
	gt.keyboard(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	assert.Equal(t, " <people>[2+] (name-asc) ", gt.GetTitle())
}

func TestGridTableStopDuringLoad(t *testing.T) {
	gt, f := newGridTable(t, 5, 2)
	f.started, f.release = make(chan struct{}), make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		gt.grid.Rows().Refresh(context.Background())
	}()
	<-f.started

	gt.Stop()
	gt.Start()
	close(f.release)
	<-done

	rows := gt.grid.Rows()
	assert.Equal(t, 2, rows.Len())
	assert.False(t, rows.Done())
	assert.Equal(t, " <people>[2+] (name-asc) ", gt.GetTitle())
	assert.Equal(t, "a1", gt.GetCell(1, 0).Text)

	f.started, f.release = nil, nil
	rows.LoadNext(context.Background())
	assert.Equal(t, []int{0, 2}, f.offsets)
}

func TestGridTableHints(t *testing.T) {
	gt, _ := newGridTable(t, 0, 2)

	var dd []string
	for _, h := range gt.Hints() {
		if h.Visible {
			dd = append(dd, h.Mnemonic+":"+h.Description)
		}
	}
	assert.ElementsMatch(t, []string{"h:Prev Column", "l:Next Column", "s:Sort", "w:Wide", "Ctrl-R:Refresh"}, dd)
}

// Helpers...

type fetcher struct {
	rows    model1.Rows
	err     error
	calls   int
	offsets []int
	before  func()
	started chan struct{}
	release chan struct{}
}

func (f *fetcher) fetch(ctx context.Context, req dao.Request) ([]model1.Row, error) {
	if f.before != nil {
		f.before()
	}
	if f.release != nil {
		f.started <- struct{}{}
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.calls++
	f.offsets = append(f.offsets, req.Offset)
	if f.err != nil {
		return nil, f.err
	}

	return dao.Page(f.rows, dao.SourceSpec{}, req)
}

func newGridTable(t *testing.T, n, limit int) (*GridTable, *fetcher) {
	t.Helper()

	f := fetcher{rows: make(model1.Rows, 0, n)}
	for i := range n {
		r := model1.NewRow(fmt.Sprintf("r%d", i+1), 3)
		r.Set("name", fmt.Sprintf("a%d", i+1))
		r.Set("cpu", fmt.Sprintf("%d", 100-i))
		r.Set("notes", strings.Repeat("x", i))
		f.rows = append(f.rows, r)
	}

	wide := NewToggle(false)
	rows, err := model.NewCollection(model.Options[model1.Row, model1.Filter]{
		Request:      f.fetch,
		Limit:        limit,
		DefaultSort:  model1.Ascending("name"),
		EmptyMessage: "Nothing here",
		Columns: model1.Columns{
			{Label: "NAME", SortKey: "name", Field: "name"},
			{Label: "CPU", SortKey: "cpu", Field: "cpu"},
			{Label: "NOTES", Field: "notes", VisibleWhen: wide.On},
		},
	})
	require.NoError(t, err)

	reg := NewRegistry()
	require.NoError(t, RegisterGrid(reg))
	c, err := reg.Create(GridComponent, GridParams{Title: "people", Rows: rows, Wide: wide})
	require.NoError(t, err)

	gt, ok := c.(*GridTable)
	require.True(t, ok)
	gt.run = func(f func()) { f() }
	require.NoError(t, gt.Init(context.Background()))
	gt.Start()
	t.Cleanup(gt.Stop)

	return gt, &f
}

func headers(gt *GridTable) []string {
	var hh []string
	for c := range gt.GetColumnCount() {
		hh = append(hh, gt.GetCell(0, c).Text)
	}

	return hh
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}
