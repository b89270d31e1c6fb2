package config

import (
	"github.com/pagegrid/pagegrid/internal/config/data"
)

// NewFlags creates a new Flags instance. Unset flags leave the
// configuration file settings alone.
func NewFlags() *data.Flags {
	return data.NewFlags()
}

// IsBoolSet returns true if a bool pointer is non-nil and true.
func IsBoolSet(b *bool) bool {
	return b != nil && *b
}

// IsStringSet returns true if a string pointer is non-nil and non-empty.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}

// IsIntSet returns true if an int pointer is non-nil and positive.
func IsIntSet(i *int) bool {
	return i != nil && *i > 0
}
