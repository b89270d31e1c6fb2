// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/pagegrid/pagegrid/internal/model1"
)

// Options configures a collection.
type Options[T, F any] struct {
	// Request fetches a page of rows.
	Request RequestFunc[T, F]

	// Limit is the page size.
	Limit int

	// Filter is sent along with every request.
	Filter F

	// DefaultSort is the initial sort descriptor.
	DefaultSort model1.SortDescriptor

	// EmptyMessage is displayed when there is nothing to show.
	EmptyMessage string

	// Columns describes the grid columns.
	Columns model1.Columns
}

// Validate checks the options can issue requests.
func (o Options[T, F]) Validate() error {
	if o.Request == nil {
		return fmt.Errorf("%w: no request function", ErrInvalidOptions)
	}
	if o.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidOptions, o.Limit)
	}
	return nil
}

// Collection buffers rows fetched page by page from a request function and
// reloads them whenever the sort descriptor changes.
type Collection[T, F any] struct {
	opts       Options[T, F]
	rows       []T
	sort       model1.SortDescriptor
	updating   bool
	done       bool
	generation uint64
	listeners  []CollectionListener
	mx         sync.RWMutex
}

// NewCollection returns a new collection seeded with optional rows.
func NewCollection[T, F any](opts Options[T, F], rows ...T) (*Collection[T, F], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Collection[T, F]{
		opts: opts,
		rows: append(make([]T, 0, len(rows)), rows...),
		sort: opts.DefaultSort,
	}, nil
}

// Options returns the current options.
func (c *Collection[T, F]) Options() Options[T, F] {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.opts
}

// SetOptions replaces the options. The buffer is kept until the next refresh.
func (c *Collection[T, F]) SetOptions(opts Options[T, F]) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	c.mx.Lock()
	defer c.mx.Unlock()
	c.opts = opts

	return nil
}

// Rows returns a copy of the buffered rows.
func (c *Collection[T, F]) Rows() []T {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return append(make([]T, 0, len(c.rows)), c.rows...)
}

// Len returns the buffered row count.
func (c *Collection[T, F]) Len() int {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return len(c.rows)
}

// Updating returns true while a fetch is in flight.
func (c *Collection[T, F]) Updating() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.updating
}

// Done returns true once a page shorter than the limit came back or a fetch failed.
func (c *Collection[T, F]) Done() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.done
}

// State returns the flags and row count as one consistent read.
func (c *Collection[T, F]) State() State {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return State{
		Len:      len(c.rows),
		Updating: c.updating,
		Done:     c.done,
		Sort:     c.sort,
	}
}

// SortDescriptor returns the active sort descriptor.
func (c *Collection[T, F]) SortDescriptor() model1.SortDescriptor {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.sort
}

// SetSortDescriptor changes the ordering and reloads. Setting the current
// value again still reloads.
func (c *Collection[T, F]) SetSortDescriptor(ctx context.Context, s model1.SortDescriptor) []T {
	c.mx.Lock()
	c.sort = s
	c.mx.Unlock()

	c.notifySortChanged(s)

	return c.Refresh(ctx)
}

// Filter returns the current filter.
func (c *Collection[T, F]) Filter() F {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.opts.Filter
}

// SetFilter changes the filter and reloads.
func (c *Collection[T, F]) SetFilter(ctx context.Context, f F) []T {
	c.mx.Lock()
	c.opts.Filter = f
	c.mx.Unlock()

	return c.Refresh(ctx)
}

// Refresh fetches the first page and replaces the buffer with it.
// Failures are not returned: paging stops and listeners are told.
func (c *Collection[T, F]) Refresh(ctx context.Context) []T {
	c.mx.Lock()
	c.updating, c.done = true, false
	c.generation++
	gen, fn, req := c.generation, c.opts.Request, c.requestFor(0)
	c.mx.Unlock()

	c.notifyChanged()

	return c.load(ctx, gen, fn, req, true)
}

// LoadNext fetches the page following the buffered rows and appends it.
// It returns false without fetching when a fetch is in flight or paging is done.
func (c *Collection[T, F]) LoadNext(ctx context.Context) bool {
	c.mx.Lock()
	if c.updating || c.done {
		c.mx.Unlock()
		return false
	}
	c.updating = true
	gen, fn, req := c.generation, c.opts.Request, c.requestFor(len(c.rows))
	c.mx.Unlock()

	c.notifyChanged()
	c.load(ctx, gen, fn, req, false)

	return true
}

// AddListener registers a collection listener.
func (c *Collection[T, F]) AddListener(l CollectionListener) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.listeners = append(c.listeners, l)
}

// RemoveListener unregisters a collection listener.
func (c *Collection[T, F]) RemoveListener(l CollectionListener) {
	c.mx.Lock()
	defer c.mx.Unlock()

	for i, lis := range c.listeners {
		if lis == l {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// requestFor builds a page request. Caller must hold the lock.
func (c *Collection[T, F]) requestFor(offset int) model1.PageRequest[F] {
	return model1.PageRequest[F]{
		Offset: offset,
		Limit:  c.opts.Limit,
		Sort:   c.sort,
		Filter: c.opts.Filter,
	}
}

// load issues the request and applies the outcome unless a later refresh
// superseded it.
func (c *Collection[T, F]) load(ctx context.Context, gen uint64, fn RequestFunc[T, F], req model1.PageRequest[F], replace bool) []T {
	rows, err := fn(ctx, req)

	c.mx.Lock()
	if gen != c.generation {
		c.mx.Unlock()
		return nil
	}
	if err != nil {
		c.done, c.updating = true, false
		c.mx.Unlock()
		c.notifyLoadFailed(err)
		c.notifyChanged()
		return nil
	}
	if replace {
		c.rows = append(make([]T, 0, len(rows)), rows...)
	} else {
		c.rows = append(c.rows, rows...)
	}
	if len(rows) < req.Limit {
		c.done = true
	}
	c.updating = false
	c.mx.Unlock()

	c.notifyChanged()

	return rows
}

func (c *Collection[T, F]) peekListeners() []CollectionListener {
	c.mx.RLock()
	defer c.mx.RUnlock()

	ll := make([]CollectionListener, len(c.listeners))
	copy(ll, c.listeners)

	return ll
}

func (c *Collection[T, F]) notifyChanged() {
	for _, l := range c.peekListeners() {
		l.CollectionChanged()
	}
}

func (c *Collection[T, F]) notifyLoadFailed(err error) {
	for _, l := range c.peekListeners() {
		l.CollectionLoadFailed(err)
	}
}

func (c *Collection[T, F]) notifySortChanged(s model1.SortDescriptor) {
	for _, l := range c.peekListeners() {
		l.SortChanged(s)
	}
}
