package dao_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagegrid/pagegrid/internal/dao"
	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFor(t *testing.T) {
	uu := map[string]struct {
		n   string
		e   dao.Format
		err bool
	}{
		"json":  {n: "a/b.json", e: dao.FormatJSON},
		"yaml":  {n: "b.YAML", e: dao.FormatYAML},
		"yml":   {n: "b.yml", e: dao.FormatYAML},
		"csv":   {n: "s3://b/c.csv", e: dao.FormatCSV},
		"toast": {n: "b.toml", err: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			f, err := dao.FormatFor(u.n)
			if u.err {
				assert.ErrorIs(t, err, dao.ErrUnknownSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.e, f)
		})
	}
}

func TestDecode(t *testing.T) {
	uu := map[string]struct {
		f    dao.Format
		raw  string
		spec dao.SourceSpec
		e    model1.Rows
		err  error
	}{
		"json": {
			f:    dao.FormatJSON,
			raw:  `[{"id":"a","n":1},{"id":"b","n":true}]`,
			spec: dao.SourceSpec{IDField: "id"},
			e: model1.Rows{
				{ID: "a", Fields: map[string]string{"id": "a", "n": "1"}},
				{ID: "b", Fields: map[string]string{"id": "b", "n": "true"}},
			},
		},
		"json-path": {
			f:    dao.FormatJSON,
			raw:  `{"data":{"items":[{"n":"x"}]}}`,
			spec: dao.SourceSpec{Path: "data.items"},
			e: model1.Rows{
				{ID: "0", Fields: map[string]string{"n": "x"}},
			},
		},
		"json-invalid": {
			f:   dao.FormatJSON,
			raw: `[{"n":`,
			err: dao.ErrBadPayload,
		},
		"json-not-array": {
			f:   dao.FormatJSON,
			raw: `{"n":1}`,
			err: dao.ErrBadPayload,
		},
		"json-not-objects": {
			f:   dao.FormatJSON,
			raw: `[1,2]`,
			err: dao.ErrBadPayload,
		},
		"yaml": {
			f:    dao.FormatYAML,
			raw:  "- name: fred\n  age: 10\n- name: blee\n  age:\n",
			spec: dao.SourceSpec{IDField: "name"},
			e: model1.Rows{
				{ID: "fred", Fields: map[string]string{"name": "fred", "age": "10"}},
				{ID: "blee", Fields: map[string]string{"name": "blee", "age": ""}},
			},
		},
		"yaml-invalid": {
			f:   dao.FormatYAML,
			raw: "name: fred",
			err: dao.ErrBadPayload,
		},
		"csv": {
			f:   dao.FormatCSV,
			raw: "name, age\nfred, 10\nblee, 20\n",
			e: model1.Rows{
				{ID: "0", Fields: map[string]string{"name": "fred", "age": "10"}},
				{ID: "1", Fields: map[string]string{"name": "blee", "age": "20"}},
			},
		},
		"csv-empty": {
			f: dao.FormatCSV,
			e: model1.Rows{},
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			rows, err := dao.Decode(u.f, []byte(u.raw), u.spec)
			if u.err != nil {
				assert.ErrorIs(t, err, u.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.e, rows)
		})
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(p, []byte("name,age\nfred,10\nblee,2\nzorg,33\n"), 0600))

	uu := map[string]string{
		"path":   p,
		"scheme": "file://" + p,
	}
	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			s, err := dao.SourceFor(context.Background(), dao.SourceSpec{URL: u, IDField: "name"})
			require.NoError(t, err)
			assert.Equal(t, "people.csv", s.Name())

			rows, err := s.Fetch(context.Background(), dao.Request{Limit: 2, Sort: model1.Descending("age")})
			require.NoError(t, err)
			assert.Equal(t, []string{"zorg", "fred"}, ids(rows))
		})
	}
}

func TestFileSourceMissing(t *testing.T) {
	s, err := dao.NewFileSource(dao.SourceSpec{URL: filepath.Join(t.TempDir(), "nope.json")})
	require.NoError(t, err)

	_, err = s.Fetch(context.Background(), dao.Request{Limit: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
