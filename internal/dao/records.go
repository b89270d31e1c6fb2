package dao

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pagegrid/pagegrid/internal/model1"
)

// LoaderFunc decodes a whole dataset.
type LoaderFunc func(context.Context) (model1.Rows, error)

// Records serves pages out of a dataset held in memory. Filtering and
// sorting happen here, on the serving side, the way a remote api would.
type Records struct {
	name  string
	spec  SourceSpec
	load  LoaderFunc
	cache *ResourceCache
}

// NewRecords returns a source over the dataset produced by the loader.
func NewRecords(name string, spec SourceSpec, load LoaderFunc) *Records {
	return &Records{
		name:  name,
		spec:  spec,
		load:  load,
		cache: NewResourceCache(spec.CacheTTL),
	}
}

// Name returns the source name.
func (r *Records) Name() string {
	return r.name
}

// Invalidate drops the cached dataset.
func (r *Records) Invalidate() {
	r.cache.Invalidate(r.name)
}

// Fetch returns the requested page.
func (r *Records) Fetch(ctx context.Context, req Request) (model1.Rows, error) {
	rows, err := r.dataset(ctx)
	if err != nil {
		return nil, err
	}

	return Page(rows, r.spec, req)
}

func (r *Records) dataset(ctx context.Context) (model1.Rows, error) {
	if rows, ok := r.cache.Get(r.name); ok {
		return rows, nil
	}
	rows, err := r.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", r.name, err)
	}
	r.cache.Set(r.name, rows)

	return rows, nil
}

// Page filters, sorts and slices rows according to the request. The input
// rows are not modified.
func Page(rows model1.Rows, spec SourceSpec, req Request) (model1.Rows, error) {
	if req.Offset < 0 || req.Limit <= 0 {
		return nil, fmt.Errorf("invalid page offset=%d limit=%d", req.Offset, req.Limit)
	}

	out := make(model1.Rows, 0, len(rows))
	for _, row := range rows {
		if matches(row, spec.FilterFields, req.Filter.Query) {
			out = append(out, row)
		}
	}

	if !req.Sort.IsBlank() {
		field, err := spec.SortField(req.Sort.Key())
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, req.Sort.Key())
		}
		desc := req.Sort.Direction() == model1.Desc
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return model1.Less(out[j].ID, out[i].ID, out[j].Get(field), out[i].Get(field))
			}
			return model1.Less(out[i].ID, out[j].ID, out[i].Get(field), out[j].Get(field))
		})
	}

	if req.Offset >= len(out) {
		return model1.Rows{}, nil
	}
	end := req.Offset + req.Limit
	if end > len(out) {
		end = len(out)
	}

	return out[req.Offset:end], nil
}

func matches(row model1.Row, fields []string, query string) bool {
	if len(fields) == 0 {
		return row.Matches(query)
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(row.Get(f)), q) {
			return true
		}
	}

	return false
}
