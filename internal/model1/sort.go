package model1

import (
	"fmt"
	"strings"
)

const (
	ascSuffix  = "asc"
	descSuffix = "desc"
	sortSep    = "-"
)

// Direction represents a sort direction.
type Direction int

const (
	// NoDirection denotes an absent sort descriptor.
	NoDirection Direction = iota
	// Asc denotes an ascending sort.
	Asc
	// Desc denotes a descending sort.
	Desc
)

// String returns the descriptor suffix for the direction.
func (d Direction) String() string {
	switch d {
	case Asc:
		return ascSuffix
	case Desc:
		return descSuffix
	default:
		return ""
	}
}

// SortDescriptor encodes the active ordering as "<sortKey>-asc" or
// "<sortKey>-desc". The zero value means no ordering was requested.
type SortDescriptor string

// Ascending returns an ascending descriptor for the given key.
func Ascending(key string) SortDescriptor {
	return SortDescriptor(key + sortSep + ascSuffix)
}

// Descending returns a descending descriptor for the given key.
func Descending(key string) SortDescriptor {
	return SortDescriptor(key + sortSep + descSuffix)
}

// ParseSort validates a user supplied descriptor.
func ParseSort(s string) (SortDescriptor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	d := SortDescriptor(s)
	if d.Direction() == NoDirection || d.Key() == "" {
		return "", fmt.Errorf("invalid sort %q: expected <key>-asc or <key>-desc", s)
	}
	return d, nil
}

// IsBlank returns true if no ordering is set.
func (s SortDescriptor) IsBlank() bool {
	return s == ""
}

// Key returns the sort key. Keys may themselves contain dashes.
func (s SortDescriptor) Key() string {
	idx := strings.LastIndex(string(s), sortSep)
	if idx < 0 {
		return ""
	}
	return string(s[:idx])
}

// Direction returns the sort direction.
func (s SortDescriptor) Direction() Direction {
	idx := strings.LastIndex(string(s), sortSep)
	if idx < 0 {
		return NoDirection
	}
	switch string(s[idx+1:]) {
	case ascSuffix:
		return Asc
	case descSuffix:
		return Desc
	default:
		return NoDirection
	}
}

// String returns the raw descriptor.
func (s SortDescriptor) String() string {
	return string(s)
}

// SortState represents a column sort indicator state.
type SortState int

const (
	// Unsorted denotes a sortable column that is not the active ordering.
	Unsorted SortState = iota
	// SortedAsc denotes the column is the active ascending ordering.
	SortedAsc
	// SortedDesc denotes the column is the active descending ordering.
	SortedDesc
)

// Class returns the indicator css class suffix for the state.
func (s SortState) Class() string {
	switch s {
	case SortedAsc:
		return "asc"
	case SortedDesc:
		return "desc"
	default:
		return "asc-desc"
	}
}

// Glyph returns the terminal indicator for the state.
func (s SortState) Glyph() string {
	switch s {
	case SortedAsc:
		return "▲"
	case SortedDesc:
		return "▼"
	default:
		return "⇅"
	}
}
