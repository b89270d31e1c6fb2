package dao

import (
	"context"
	"time"

	"github.com/pagegrid/pagegrid/internal/model1"
)

// Error represents a source error.
type Error string

const (
	// ErrUnknownSource flags a source url no source can serve.
	ErrUnknownSource = Error("unknown source")

	// ErrUnsortableKey flags a sort key the source does not know.
	ErrUnsortableKey = Error("unsortable key")

	// ErrBadPayload flags a payload that could not be decoded into rows.
	ErrBadPayload = Error("bad payload")

	// ErrUnknownProfile flags an aws profile missing from the shared files.
	ErrUnknownProfile = Error("unknown aws profile")
)

// Error returns the error text.
func (e Error) Error() string {
	return string(e)
}

// Request represents a page request issued by the grid.
type Request = model1.PageRequest[model1.Filter]

// Source fetches pages of rows.
type Source interface {
	// Name returns a display name for the source.
	Name() string

	// Fetch returns the rows of the requested page.
	Fetch(context.Context, Request) (model1.Rows, error)
}

// Closer represents a source holding resources.
type Closer interface {
	Close() error
}

// SourceSpec describes where and how to fetch rows.
type SourceSpec struct {
	// URL locates the rows: a file path, s3://, postgres://, mysql://,
	// http(s):// or demo://.
	URL string

	// Table names the sql table or view.
	Table string

	// IDField names the row identity field. Blank uses the record index.
	IDField string

	// Path is a gjson path locating the row array in json payloads.
	Path string

	// SortKeys maps sort keys to row fields or sql columns. When empty any
	// field may be sorted on by in memory sources.
	SortKeys map[string]string

	// Fields lists the sql columns to select. Blank selects all.
	Fields []string

	// FilterFields lists the fields matched by the filter. Blank matches all
	// fields in memory and the selected fields in sql.
	FilterFields []string

	// Profile and Region select aws credentials for s3 sources.
	Profile string
	Region  string

	// CacheTTL bounds how long a decoded dataset is reused.
	CacheTTL time.Duration

	// Timeout bounds remote calls.
	Timeout time.Duration
}

// SortField resolves a sort key to a field. Unknown keys are rejected when
// sort keys are declared.
func (s SourceSpec) SortField(key string) (string, error) {
	if len(s.SortKeys) == 0 {
		return key, nil
	}
	f, ok := s.SortKeys[key]
	if !ok {
		return "", ErrUnsortableKey
	}
	if f == "" {
		f = key
	}

	return f, nil
}
