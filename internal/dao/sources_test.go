package dao_test

import (
	"context"
	"testing"

	"github.com/pagegrid/pagegrid/internal/dao"
	"github.com/pagegrid/pagegrid/internal/model"
	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFor(t *testing.T) {
	uu := map[string]struct {
		spec dao.SourceSpec
		name string
		err  error
	}{
		"blank":  {err: dao.ErrUnknownSource},
		"scheme": {spec: dao.SourceSpec{URL: "gopher://blee"}, err: dao.ErrUnknownSource},
		"ext":    {spec: dao.SourceSpec{URL: "rows.txt"}, err: dao.ErrUnknownSource},
		"demo":   {spec: dao.SourceSpec{URL: "demo://"}, name: "demo"},
		"http":   {spec: dao.SourceSpec{URL: "https://api.example.com/rows"}, name: "api.example.com/rows"},
		"file":   {spec: dao.SourceSpec{URL: "/tmp/rows.yaml"}, name: "rows.yaml"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			s, err := dao.SourceFor(context.Background(), u.spec)
			if u.err != nil {
				assert.ErrorIs(t, err, u.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.name, s.Name())
		})
	}
}

func TestDemoSource(t *testing.T) {
	s, err := dao.NewDemoSource(dao.SourceSpec{URL: "demo://?rows=25"})
	require.NoError(t, err)

	var all model1.Rows
	for off := 0; ; off += 10 {
		rows, err := s.Fetch(context.Background(), dao.Request{Offset: off, Limit: 10})
		require.NoError(t, err)
		all = append(all, rows...)
		if len(rows) < 10 {
			break
		}
	}
	assert.Len(t, all, 25)
	assert.Equal(t, "res-0001", all[0].ID)
	assert.Equal(t, dao.DemoRows(25), all)

	_, err = dao.NewDemoSource(dao.SourceSpec{URL: "demo://?rows=lots"})
	assert.Error(t, err)
}

func TestRequestFunc(t *testing.T) {
	s, err := dao.NewDemoSource(dao.SourceSpec{URL: "demo://?rows=12"})
	require.NoError(t, err)

	rows, err := model.NewCollection(model.Options[model1.Row, model1.Filter]{
		Request: dao.RequestFunc(s),
		Limit:   5,
	})
	require.NoError(t, err)

	assert.Len(t, rows.Refresh(context.Background()), 5)
	assert.True(t, rows.LoadNext(context.Background()))
	assert.True(t, rows.LoadNext(context.Background()))
	assert.Equal(t, 12, rows.Len())
	assert.True(t, rows.Done())
}
