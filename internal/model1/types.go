package model1

// NAValue is shown for missing cell values.
const NAValue = "n/a"

// Filter represents the opaque filter sent along with every page request by
// the built-in sources. Sources match Query case-insensitively against row fields.
type Filter struct {
	Query string `yaml:"query"`
}

// IsBlank returns true if the filter matches every row.
func (f Filter) IsBlank() bool {
	return f.Query == ""
}

// PageRequest represents the parameters of a single page fetch.
type PageRequest[F any] struct {
	Offset int
	Limit  int
	Sort   SortDescriptor
	Filter F
}
