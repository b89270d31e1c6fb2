package dao_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pagegrid/pagegrid/internal/dao"
	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	rows := makeRows(
		[]string{"1", "bob", "10"},
		[]string{"2", "ada", "9"},
		[]string{"3", "cyd", "100"},
		[]string{"4", "bobby", "1"},
	)

	uu := map[string]struct {
		spec dao.SourceSpec
		req  dao.Request
		e    []string
		err  error
	}{
		"plain": {
			req: dao.Request{Limit: 10},
			e:   []string{"1", "2", "3", "4"},
		},
		"limit": {
			req: dao.Request{Offset: 1, Limit: 2},
			e:   []string{"2", "3"},
		},
		"past-end": {
			req: dao.Request{Offset: 10, Limit: 2},
			e:   []string{},
		},
		"name-asc": {
			req: dao.Request{Limit: 10, Sort: model1.Ascending("name")},
			e:   []string{"2", "1", "4", "3"},
		},
		"cpu-desc": {
			req: dao.Request{Limit: 10, Sort: model1.Descending("cpu")},
			e:   []string{"3", "1", "2", "4"},
		},
		"filter": {
			req: dao.Request{Limit: 10, Filter: model1.Filter{Query: "BOB"}},
			e:   []string{"1", "4"},
		},
		"filter-fields": {
			spec: dao.SourceSpec{FilterFields: []string{"cpu"}},
			req:  dao.Request{Limit: 10, Filter: model1.Filter{Query: "10"}},
			e:    []string{"1", "3"},
		},
		"mapped-key": {
			spec: dao.SourceSpec{SortKeys: map[string]string{"n": "name"}},
			req:  dao.Request{Limit: 1, Sort: model1.Descending("n")},
			e:    []string{"3"},
		},
		"unknown-key": {
			spec: dao.SourceSpec{SortKeys: map[string]string{"n": "name"}},
			req:  dao.Request{Limit: 1, Sort: model1.Ascending("cpu")},
			err:  dao.ErrUnsortableKey,
		},
		"bad-limit": {
			req: dao.Request{Limit: 0},
			err: errors.New("invalid page offset=0 limit=0"),
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			out, err := dao.Page(rows, u.spec, u.req)
			if u.err != nil {
				require.Error(t, err)
				if errors.Is(u.err, dao.ErrUnsortableKey) {
					assert.ErrorIs(t, err, dao.ErrUnsortableKey)
				} else {
					assert.Equal(t, u.err.Error(), err.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.e, ids(out))
		})
	}
}

func TestPageLeavesInputAlone(t *testing.T) {
	rows := makeRows([]string{"1", "b", "1"}, []string{"2", "a", "2"})

	_, err := dao.Page(rows, dao.SourceSpec{}, dao.Request{Limit: 5, Sort: model1.Ascending("name")})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(rows))
}

func TestRecordsCachesDataset(t *testing.T) {
	var calls int
	r := dao.NewRecords("fred", dao.SourceSpec{}, func(context.Context) (model1.Rows, error) {
		calls++
		return makeRows([]string{"1", "a", "1"}, []string{"2", "b", "2"}), nil
	})

	assert.Equal(t, "fred", r.Name())
	for range 3 {
		out, err := r.Fetch(context.Background(), dao.Request{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, out, 1)
	}
	assert.Equal(t, 1, calls)

	r.Invalidate()
	_, err := r.Fetch(context.Background(), dao.Request{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRecordsLoadFailed(t *testing.T) {
	boom := errors.New("boom")
	r := dao.NewRecords("fred", dao.SourceSpec{}, func(context.Context) (model1.Rows, error) {
		return nil, boom
	})

	_, err := r.Fetch(context.Background(), dao.Request{Limit: 1})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "failed to load fred: boom", err.Error())
}

// Helpers...

func makeRows(vv ...[]string) model1.Rows {
	rows := make(model1.Rows, 0, len(vv))
	for _, v := range vv {
		r := model1.NewRow(v[0], 3)
		r.Set("id", v[0])
		r.Set("name", v[1])
		r.Set("cpu", v[2])
		rows = append(rows, r)
	}

	return rows
}

func ids(rows model1.Rows) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}

	return out
}
