package model1_test

import (
	"testing"

	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortDescriptor(t *testing.T) {
	uu := map[string]struct {
		s   model1.SortDescriptor
		key string
		dir model1.Direction
	}{
		"blank":      {s: "", key: "", dir: model1.NoDirection},
		"asc":        {s: model1.Ascending("name"), key: "name", dir: model1.Asc},
		"desc":       {s: model1.Descending("name"), key: "name", dir: model1.Desc},
		"dashed-key": {s: "created-at-desc", key: "created-at", dir: model1.Desc},
		"bad-suffix": {s: "name-up", key: "name", dir: model1.NoDirection},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.key, u.s.Key())
			assert.Equal(t, u.dir, u.s.Direction())
		})
	}
}

func TestParseSort(t *testing.T) {
	s, err := model1.ParseSort(" name-asc ")
	require.NoError(t, err)
	assert.Equal(t, model1.Ascending("name"), s)

	s, err = model1.ParseSort("")
	require.NoError(t, err)
	assert.True(t, s.IsBlank())

	_, err = model1.ParseSort("name")
	assert.Error(t, err)
	_, err = model1.ParseSort("-asc")
	assert.Error(t, err)
}

func TestSortStateClass(t *testing.T) {
	assert.Equal(t, "asc", model1.SortedAsc.Class())
	assert.Equal(t, "desc", model1.SortedDesc.Class())
	assert.Equal(t, "asc-desc", model1.Unsorted.Class())
}

func TestLess(t *testing.T) {
	uu := map[string]struct {
		v1, v2 string
		e      bool
	}{
		"natural":  {v1: "file2", v2: "file10", e: true},
		"numbers":  {v1: "9", v2: "1,000", e: true},
		"float":    {v1: "2.5", v2: "2.25", e: false},
		"duration": {v1: "2d", v2: "3h", e: false},
		"mixed":    {v1: "1h30m", v2: "2h", e: true},
		"text":     {v1: "bob", v2: "alice", e: false},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, model1.Less("a", "b", u.v1, u.v2))
		})
	}
}

func TestLessTieBreaksOnID(t *testing.T) {
	assert.True(t, model1.Less("r1", "r2", "same", "same"))
	assert.False(t, model1.Less("r2", "r1", "same", "same"))
}
