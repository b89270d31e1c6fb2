package dao

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pagegrid/pagegrid/internal/model1"
)

// NewFileSource returns a source over a local json, yaml or csv file.
func NewFileSource(spec SourceSpec) (*Records, error) {
	f, err := FormatFor(spec.URL)
	if err != nil {
		return nil, err
	}
	p := spec.URL
	if len(p) > len(fileScheme) && p[:len(fileScheme)] == fileScheme {
		p = p[len(fileScheme):]
	}

	return NewRecords(filepath.Base(p), spec, func(context.Context) (model1.Rows, error) {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", p, err)
		}
		rows, err := Decode(f, raw, spec)
		if err != nil {
			return nil, err
		}
		slog.Debug("Dataset loaded", slog.String("file", p), slog.Int("rows", len(rows)))

		return rows, nil
	}), nil
}
