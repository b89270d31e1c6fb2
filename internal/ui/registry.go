// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package ui

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pagegrid/pagegrid/internal/model"
	"github.com/pagegrid/pagegrid/internal/model1"
)

// Error represents a ui error.
type Error string

// Error returns the error text.
func (e Error) Error() string {
	return string(e)
}

const (
	// ErrComponentExists flags a component name registered twice.
	ErrComponentExists = Error("component already registered")

	// ErrUnknownComponent flags a component name nobody registered.
	ErrUnknownComponent = Error("unknown component")
)

// GridComponent names the sortable paged grid component.
const GridComponent = "grid"

// Toggle represents a shared on/off switch.
type Toggle struct {
	on atomic.Bool
}

// NewToggle returns a toggle in the given state.
func NewToggle(on bool) *Toggle {
	var t Toggle
	t.on.Store(on)

	return &t
}

// On returns the toggle state.
func (t *Toggle) On() bool {
	return t.on.Load()
}

// Flip switches the toggle and returns the new state.
func (t *Toggle) Flip() bool {
	for {
		v := t.on.Load()
		if t.on.CompareAndSwap(v, !v) {
			return !v
		}
	}
}

// GridParams carries the component parameters.
type GridParams struct {
	// Title names the component.
	Title string

	// Rows is the paged collection to show.
	Rows *model.Collection[model1.Row, model1.Filter]

	// Columns overrides the collection columns when set.
	Columns model1.Columns

	// Cell renders cells. Nil uses model1.DefaultCell.
	Cell model1.CellFunc

	// Wide drives the visibility of wide columns. Nil disables the toggle.
	Wide *Toggle
}

// ComponentFactory builds a component from its parameters.
type ComponentFactory func(GridParams) (Component, error)

// Registry tracks named component factories.
type Registry struct {
	factories map[string]ComponentFactory
	mx        sync.RWMutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ComponentFactory)}
}

// Register adds a named factory.
func (r *Registry) Register(name string, f ComponentFactory) error {
	r.mx.Lock()
	defer r.mx.Unlock()

	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %q", ErrComponentExists, name)
	}
	r.factories[name] = f

	return nil
}

// Create builds a new instance of a named component.
func (r *Registry) Create(name string, p GridParams) (Component, error) {
	r.mx.RLock()
	f, ok := r.factories[name]
	r.mx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}

	return f(p)
}

// Names returns the registered component names.
func (r *Registry) Names() []string {
	r.mx.RLock()
	defer r.mx.RUnlock()

	nn := make([]string, 0, len(r.factories))
	for n := range r.factories {
		nn = append(nn, n)
	}
	sort.Strings(nn)

	return nn
}

// RegisterGrid installs the grid component.
func RegisterGrid(r *Registry) error {
	return r.Register(GridComponent, func(p GridParams) (Component, error) {
		return NewGridTable(p)
	})
}
