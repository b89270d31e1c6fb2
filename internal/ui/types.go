// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package ui

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/derailed/tview"
	"github.com/fvbommel/sortorder"
)

// MenuHint represents a keyboard mnemonic.
type MenuHint struct {
	Mnemonic    string
	Description string
	Visible     bool
}

// IsBlank checks if menu hint is a placeholder.
func (m MenuHint) IsBlank() bool {
	return m.Mnemonic == "" && m.Description == "" && !m.Visible
}

// MenuHints represents a collection of hints.
type MenuHints []MenuHint

// Visible returns the displayable hints, numbered mnemonics first in natural
// order then the rest by description.
func (h MenuHints) Visible() MenuHints {
	vv := make(MenuHints, 0, len(h))
	for _, m := range h {
		if m.Visible && !m.IsBlank() {
			vv = append(vv, m)
		}
	}
	slices.SortStableFunc(vv, compareHints)

	return vv
}

func compareHints(a, b MenuHint) int {
	an, bn := isIndex(a.Mnemonic), isIndex(b.Mnemonic)
	switch {
	case an && bn:
		if sortorder.NaturalLess(a.Mnemonic, b.Mnemonic) {
			return -1
		}
		if sortorder.NaturalLess(b.Mnemonic, a.Mnemonic) {
			return 1
		}
		return 0
	case an:
		return -1
	case bn:
		return 1
	}

	return strings.Compare(a.Description, b.Description)
}

func isIndex(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// Hinter represent a menu mnemonic provider.
type Hinter interface {
	// Hints returns a collection of menu hints.
	Hints() MenuHints
}

// Primitive represents a UI primitive.
type Primitive interface {
	tview.Primitive

	// Name returns the view name.
	Name() string
}

// Igniter represents a runnable view.
type Igniter interface {
	// Init initializes a component.
	Init(ctx context.Context) error

	// Start starts a component.
	Start()

	// Stop terminates a component.
	Stop()
}

// Component represents a ui component.
type Component interface {
	Primitive
	Igniter
	Hinter
}

// StackListener represents a stack listener.
type StackListener interface {
	// StackPushed indicates a new item was added.
	StackPushed(Component)

	// StackPopped indicates an item was deleted
	StackPopped(old, new Component)

	// StackTop indicates the top of the stack
	StackTop(Component)
}

// Stack represents a stack of components.
type Stack struct {
	components []Component
	listeners  []StackListener
	mx         sync.RWMutex
}

// NewStack returns a new initialized stack.
func NewStack() *Stack {
	return &Stack{}
}

// Flatten returns the component names, bottom first.
func (s *Stack) Flatten() []string {
	s.mx.RLock()
	defer s.mx.RUnlock()

	ss := make([]string, len(s.components))
	for i, c := range s.components {
		ss[i] = c.Name()
	}
	return ss
}

// AddListener registers a stack listener.
func (s *Stack) AddListener(l StackListener) {
	s.mx.Lock()
	s.listeners = append(s.listeners, l)
	s.mx.Unlock()

	if top := s.Top(); top != nil {
		l.StackTop(top)
	}
}

// Push stops the current top and adds a new item.
func (s *Stack) Push(c Component) {
	if top := s.Top(); top != nil {
		top.Stop()
	}

	s.mx.Lock()
	s.components = append(s.components, c)
	ll := s.snapshot()
	s.mx.Unlock()

	for _, l := range ll {
		l.StackPushed(c)
	}
}

// Pop removes the top item and returns it.
func (s *Stack) Pop() (Component, bool) {
	s.mx.Lock()
	if len(s.components) == 0 {
		s.mx.Unlock()
		return nil, false
	}
	c := s.components[len(s.components)-1]
	s.components = s.components[:len(s.components)-1]
	var top Component
	if n := len(s.components); n > 0 {
		top = s.components[n-1]
	}
	ll := s.snapshot()
	s.mx.Unlock()

	c.Stop()
	for _, l := range ll {
		l.StackPopped(c, top)
	}

	return c, true
}

// Empty returns true if the stack is empty.
func (s *Stack) Empty() bool {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.components) == 0
}

// Len returns the stack depth.
func (s *Stack) Len() int {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.components)
}

// Top returns the top most item or nil if the stack is empty.
func (s *Stack) Top() Component {
	s.mx.RLock()
	defer s.mx.RUnlock()

	if len(s.components) == 0 {
		return nil
	}
	return s.components[len(s.components)-1]
}

func (s *Stack) snapshot() []StackListener {
	ll := make([]StackListener, len(s.listeners))
	copy(ll, s.listeners)
	return ll
}
