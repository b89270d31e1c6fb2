// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package model

import (
	"context"

	"github.com/pagegrid/pagegrid/internal/model1"
)

// Error represents a model error.
type Error string

// Error returns the error text.
func (e Error) Error() string {
	return string(e)
}

// ErrInvalidOptions flags collection options that cannot issue requests.
const ErrInvalidOptions = Error("invalid collection options")

// RequestFunc fetches a single page of rows.
type RequestFunc[T, F any] func(context.Context, model1.PageRequest[F]) ([]T, error)

// CollectionListener represents a collection listener.
type CollectionListener interface {
	// CollectionChanged notifies the rows or loading flags changed.
	CollectionChanged()

	// CollectionLoadFailed notifies a page fetch failed. Paging stops.
	CollectionLoadFailed(error)

	// SortChanged notifies the sort descriptor changed, before the reload.
	SortChanged(model1.SortDescriptor)
}

// State represents a consistent view of the collection flags.
type State struct {
	Len      int
	Updating bool
	Done     bool
	Sort     model1.SortDescriptor
}
