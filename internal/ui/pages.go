// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package ui

import (
	"github.com/derailed/tview"
)

// Pages shows the component on top of its stack.
type Pages struct {
	*tview.Pages
	*Stack
}

// NewPages returns a new pages manager.
func NewPages() *Pages {
	p := &Pages{
		Pages: tview.NewPages(),
		Stack: NewStack(),
	}
	p.Stack.AddListener(p)

	return p
}

// Current returns the name of the page on top.
func (p *Pages) Current() string {
	if c := p.Top(); c != nil {
		return c.Name()
	}

	return ""
}

// CurrentPage returns the component on top.
func (p *Pages) CurrentPage() Component {
	return p.Top()
}

// Clear pops every page.
func (p *Pages) Clear() {
	for !p.Empty() {
		p.Pop()
	}
}

// StackPushed notifies a new component was pushed.
func (p *Pages) StackPushed(c Component) {
	p.AddPage(c.Name(), c, true, true)
	p.SwitchToPage(c.Name())
}

// StackPopped notifies a component was removed.
func (p *Pages) StackPopped(old, top Component) {
	p.RemovePage(old.Name())
	if top != nil {
		p.SwitchToPage(top.Name())
	}
}

// StackTop notifies the top component.
func (*Pages) StackTop(Component) {}
