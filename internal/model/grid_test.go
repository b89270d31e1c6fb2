package model_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pagegrid/pagegrid/internal/model"
	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridColumnsFallback(t *testing.T) {
	c := newCollection(t, newPager())

	g := model.NewGrid(c, nil)
	assert.Len(t, g.Columns(), 3)

	g = model.NewGrid(c, model1.Columns{{Label: "Only"}})
	assert.Len(t, g.Columns(), 1)
	assert.Same(t, c, g.Rows())
}

func TestGridToggleCycle(t *testing.T) {
	c := newUnsortedCollection(t)
	g := model.NewGrid(c, nil)
	name := g.Columns()[0]

	cls, ok := g.SortIndicatorClass(name)
	require.True(t, ok)
	assert.Equal(t, "name asc-desc", cls)

	ee := []struct {
		sort model1.SortDescriptor
		cls  string
	}{
		{sort: "name-asc", cls: "name asc"},
		{sort: "name-desc", cls: "name desc"},
		{sort: "name-asc", cls: "name asc"},
		{sort: "name-desc", cls: "name desc"},
	}
	for _, e := range ee {
		assert.True(t, g.ToggleSort(context.Background(), name))
		assert.Equal(t, e.sort, c.SortDescriptor())
		cls, _ = g.SortIndicatorClass(name)
		assert.Equal(t, e.cls, cls)
	}
}

func TestGridToggleOtherColumnLandsAscending(t *testing.T) {
	uu := map[string]model1.SortDescriptor{
		"none":       "",
		"other-asc":  model1.Ascending("name"),
		"other-desc": model1.Descending("name"),
		"self-desc":  model1.Descending("age"),
	}

	for k := range uu {
		start := uu[k]
		t.Run(k, func(t *testing.T) {
			c := newUnsortedCollection(t)
			c.SetSortDescriptor(context.Background(), start)
			g := model.NewGrid(c, nil)

			g.ToggleSort(context.Background(), g.Columns()[1])

			assert.Equal(t, model1.Ascending("age"), c.SortDescriptor())
			cls, _ := g.SortIndicatorClass(g.Columns()[0])
			assert.Equal(t, "name asc-desc", cls)
		})
	}
}

func TestGridToggleUnsortableColumn(t *testing.T) {
	p := newPager()
	c := newCollection(t, p)
	g := model.NewGrid(c, nil)
	notes := g.Columns()[2]

	assert.False(t, g.ToggleSort(context.Background(), notes))
	assert.Equal(t, model1.Ascending("name"), c.SortDescriptor())
	assert.Empty(t, p.requests())

	_, ok := g.SortIndicatorClass(notes)
	assert.False(t, ok)
}

func TestGridToggleReloads(t *testing.T) {
	p := newPager([]string{"a", "b"}, []string{"c"})
	c := newCollection(t, p)
	g := model.NewGrid(c, nil)
	c.Refresh(context.Background())

	g.ToggleSort(context.Background(), g.Columns()[0])

	assert.Equal(t, []string{"c"}, c.Rows())
	rr := p.requests()
	require.Len(t, rr, 2)
	assert.Equal(t, model1.Descending("name"), rr[1].Sort)
	assert.Equal(t, 0, rr[1].Offset)
}

func TestGridEmptyMessage(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		g := model.NewGrid(newCollection(t, newPager()), nil)
		msg, ok := g.EmptyMessage()
		assert.True(t, ok)
		assert.Equal(t, "Nothing to see here", msg)
	})

	t.Run("rows", func(t *testing.T) {
		g := model.NewGrid(newCollection(t, newPager(), "a"), nil)
		_, ok := g.EmptyMessage()
		assert.False(t, ok)
	})

	t.Run("loading", func(t *testing.T) {
		p := newPager([]string{})
		p.hold = make(chan struct{})
		c := newCollection(t, p)
		g := model.NewGrid(c, nil)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Refresh(context.Background())
		}()
		<-p.started

		_, ok := g.EmptyMessage()
		assert.False(t, ok)

		close(p.hold)
		wg.Wait()
		msg, ok := g.EmptyMessage()
		assert.True(t, ok)
		assert.Equal(t, "Nothing to see here", msg)
	})
}

func TestGridVisibleColumns(t *testing.T) {
	wide := false
	c := newCollection(t, newPager())
	g := model.NewGrid(c, model1.Columns{
		{Label: "Name", SortKey: "name"},
		{Label: "Notes", VisibleWhen: func() bool { return wide }},
	})

	assert.Len(t, g.VisibleColumns(), 1)
	wide = true
	assert.Len(t, g.VisibleColumns(), 2)
}

func newUnsortedCollection(t *testing.T) *model.Collection[string, string] {
	t.Helper()

	c := newCollection(t, newPager())
	opts := c.Options()
	opts.DefaultSort = ""
	c, err := model.NewCollection(opts)
	require.NoError(t, err)

	return c
}
