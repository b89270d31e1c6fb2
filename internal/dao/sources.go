package dao

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pagegrid/pagegrid/internal/model"
	"github.com/pagegrid/pagegrid/internal/model1"
)

const (
	fileScheme = "file://"
	demoScheme = "demo"
)

// SourceFor returns the source serving spec.URL.
func SourceFor(ctx context.Context, spec SourceSpec) (Source, error) {
	if spec.URL == "" {
		return nil, fmt.Errorf("%w: no source url", ErrUnknownSource)
	}
	u, err := url.Parse(spec.URL)
	if err != nil || u.Scheme == "" || strings.HasPrefix(spec.URL, fileScheme) || len(u.Scheme) == 1 {
		return NewFileSource(spec)
	}

	switch strings.ToLower(u.Scheme) {
	case "s3":
		client, err := NewS3Client(ctx, spec.Profile, spec.Region)
		if err != nil {
			return nil, err
		}
		return NewS3Source(spec, client)
	case "postgres", "postgresql", "mysql":
		return OpenSQLSource(spec)
	case "http", "https":
		return NewHTTPSource(spec, nil)
	case demoScheme:
		return NewDemoSource(spec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, spec.URL)
	}
}

// RequestFunc adapts a source to a collection request function.
func RequestFunc(s Source) model.RequestFunc[model1.Row, model1.Filter] {
	return func(ctx context.Context, req Request) ([]model1.Row, error) {
		return s.Fetch(ctx, req)
	}
}
