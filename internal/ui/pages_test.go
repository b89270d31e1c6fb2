// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package ui_test

import (
	"context"
	"testing"

	"github.com/derailed/tview"
	"github.com/pagegrid/pagegrid/internal/ui"
	"github.com/stretchr/testify/assert"
)

func TestPagesStack(t *testing.T) {
	p := ui.NewPages()
	m := ui.NewMenu()
	p.AddListener(m)

	c1, c2 := newComponent("c1", "Sort"), newComponent("c2", "Quit")
	p.Push(c1)
	assert.Equal(t, "c1", p.Current())
	assert.Contains(t, menuText(m), "<s>[white::-] Sort")

	p.Push(c2)
	assert.Equal(t, "c2", p.Current())
	assert.Equal(t, 1, c1.stops)
	assert.Equal(t, []string{"c1", "c2"}, p.Flatten())
	assert.True(t, p.HasPage("c2"))
	assert.Contains(t, menuText(m), "<s>[white::-] Quit")

	c, ok := p.Pop()
	assert.True(t, ok)
	assert.Same(t, c2, c)
	assert.Equal(t, 1, c2.stops)
	assert.False(t, p.HasPage("c2"))
	assert.Contains(t, menuText(m), "<s>[white::-] Sort")
	assert.Same(t, c1, p.CurrentPage())

	p.Clear()
	assert.True(t, p.Empty())
	_, ok = p.Pop()
	assert.False(t, ok)
	assert.Equal(t, "", p.Current())
}

func TestCrumbs(t *testing.T) {
	p := ui.NewPages()
	cr := ui.NewCrumbs(p.Stack)
	p.AddListener(cr)

	p.Push(newComponent("Demo Grid", "Sort"))
	assert.Contains(t, cr.GetText(true), "<demogrid>")
}

type component struct {
	*tview.Box

	name  string
	hint  string
	stops int
}

func newComponent(name, hint string) *component {
	return &component{Box: tview.NewBox(), name: name, hint: hint}
}

func (c *component) Name() string { return c.name }
func (c *component) Init(context.Context) error { return nil }
func (c *component) Start() {}
func (c *component) Stop() { c.stops++ }
func (c *component) Hints() ui.MenuHints {
	return ui.MenuHints{{Mnemonic: "s", Description: c.hint, Visible: true}}
}

func menuText(m *ui.Menu) string {
	return m.GetCell(0, 0).Text
}
