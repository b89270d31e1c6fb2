package model1_test

import (
	"testing"

	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/stretchr/testify/assert"
)

func TestColumnSortState(t *testing.T) {
	c := model1.Column{SortKey: "name", Label: "Name"}

	assert.Equal(t, model1.Unsorted, c.SortState(""))
	assert.Equal(t, model1.SortedAsc, c.SortState("name-asc"))
	assert.Equal(t, model1.SortedDesc, c.SortState("name-desc"))
	assert.Equal(t, model1.Unsorted, c.SortState("age-asc"))
}

func TestColumnsVisible(t *testing.T) {
	wide := false
	cc := model1.Columns{
		{Label: "Name", SortKey: "name"},
		{Label: "Notes", VisibleWhen: func() bool { return wide }},
		{Label: "Age", SortKey: "age"},
	}

	v := cc.Visible()
	assert.Len(t, v, 2)
	assert.Equal(t, "Age", v[1].Label)

	wide = true
	assert.Len(t, cc.Visible(), 3)
}

func TestColumnsSortKeys(t *testing.T) {
	cc := model1.Columns{
		{Label: "Name", SortKey: "name"},
		{Label: "Notes"},
		{Label: "Age", SortKey: "age"},
	}

	kk := cc.SortKeys()
	assert.Len(t, kk, 2)
	assert.Contains(t, kk, "name")
	assert.Contains(t, kk, "age")
	assert.False(t, cc[1].Sortable())
}

func TestRowMatches(t *testing.T) {
	r := model1.NewRow("1", 2)
	r.Set("name", "Fernand")
	r.Set("city", "Lyon")

	assert.True(t, r.Matches(""))
	assert.True(t, r.Matches("lyo"))
	assert.True(t, r.Matches("FERN"))
	assert.False(t, r.Matches("paris"))
	assert.Equal(t, []string{"city", "name"}, r.Keys())
}

func TestDefaultCell(t *testing.T) {
	r := model1.NewRow("1", 1)
	r.Set("name", "fred")

	assert.Equal(t, "fred", model1.DefaultCell(r, model1.Column{Field: "name"}))
	assert.Equal(t, model1.NAValue, model1.DefaultCell(r, model1.Column{Field: "age"}))
}
