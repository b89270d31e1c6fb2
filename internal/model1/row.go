package model1

import (
	"sort"
	"strings"
)

// Row represents a single record returned by a source.
type Row struct {
	ID     string
	Fields map[string]string
}

// NewRow returns a row with the given id.
func NewRow(id string, size int) Row {
	return Row{ID: id, Fields: make(map[string]string, size)}
}

// Get returns a field value or blank if missing.
func (r Row) Get(field string) string {
	return r.Fields[field]
}

// Set sets a field value.
func (r Row) Set(field, value string) {
	r.Fields[field] = value
}

// Matches returns true if any field contains the query, ignoring case.
func (r Row) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, v := range r.Fields {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// Keys returns the sorted field names.
func (r Row) Keys() []string {
	kk := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		kk = append(kk, k)
	}
	sort.Strings(kk)
	return kk
}

// Clone returns a deep copy.
func (r Row) Clone() Row {
	out := NewRow(r.ID, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

// Rows represents a collection of rows.
type Rows []Row

// Clone returns a deep copy.
func (r Rows) Clone() Rows {
	out := make(Rows, len(r))
	for i, row := range r {
		out[i] = row.Clone()
	}
	return out
}
