package dao

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format represents a dataset encoding.
type Format string

const (
	// FormatJSON denotes a json array of objects.
	FormatJSON Format = "json"
	// FormatYAML denotes a yaml sequence of mappings.
	FormatYAML Format = "yaml"
	// FormatCSV denotes a csv file with a header line.
	FormatCSV Format = "csv"
)

// FormatFor returns the dataset format matching a file name.
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: no decoder for %q", ErrUnknownSource, name)
	}
}

// Decode decodes a dataset.
func Decode(f Format, raw []byte, spec SourceSpec) (model1.Rows, error) {
	switch f {
	case FormatJSON:
		return decodeJSON(raw, spec)
	case FormatYAML:
		return decodeYAML(raw, spec)
	case FormatCSV:
		return decodeCSV(raw, spec)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrBadPayload, f)
	}
}

func decodeJSON(raw []byte, spec SourceSpec) (model1.Rows, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid json", ErrBadPayload)
	}
	res := gjson.ParseBytes(raw)
	if spec.Path != "" {
		res = res.Get(spec.Path)
	}

	return jsonRows(res, spec.IDField)
}

// jsonRows converts a json array of objects into rows.
func jsonRows(res gjson.Result, idField string) (model1.Rows, error) {
	if !res.IsArray() {
		return nil, fmt.Errorf("%w: expected a json array", ErrBadPayload)
	}

	var (
		rows model1.Rows
		err  error
	)
	res.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			err = fmt.Errorf("%w: row %d is not an object", ErrBadPayload, len(rows))
			return false
		}
		row := model1.NewRow("", 8)
		item.ForEach(func(k, v gjson.Result) bool {
			row.Set(k.String(), v.String())
			return true
		})
		row.ID = rowID(row, idField, len(rows))
		rows = append(rows, row)
		return true
	})

	return rows, err
}

func decodeYAML(raw []byte, spec SourceSpec) (model1.Rows, error) {
	var items []map[string]any
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}

	rows := make(model1.Rows, 0, len(items))
	for i, item := range items {
		row := model1.NewRow("", len(item))
		for k, v := range item {
			if v == nil {
				row.Set(k, "")
				continue
			}
			row.Set(k, fmt.Sprint(v))
		}
		row.ID = rowID(row, spec.IDField, i)
		rows = append(rows, row)
	}

	return rows, nil
}

func decodeCSV(raw []byte, spec SourceSpec) (model1.Rows, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model1.Rows{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}

	var rows model1.Rows
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadPayload, err)
		}
		row := model1.NewRow("", len(header))
		for i, h := range header {
			if i < len(rec) {
				row.Set(h, rec[i])
			}
		}
		row.ID = rowID(row, spec.IDField, len(rows))
		rows = append(rows, row)
	}

	return rows, nil
}

func rowID(row model1.Row, idField string, idx int) string {
	if idField != "" {
		if id := row.Get(idField); id != "" {
			return id
		}
	}

	return strconv.Itoa(idx)
}
