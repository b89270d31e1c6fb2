// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Crumbs shows the names of the stacked pages.
type Crumbs struct {
	*tview.TextView

	stack *Stack
}

// NewCrumbs returns a new breadcrumb view over a stack.
func NewCrumbs(s *Stack) *Crumbs {
	c := &Crumbs{
		stack:    s,
		TextView: tview.NewTextView(),
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextAlign(tview.AlignLeft)
	c.SetBorderPadding(0, 0, 1, 1)
	c.SetDynamicColors(true)

	return c
}

// StackPushed indicates a new item was added.
func (c *Crumbs) StackPushed(Component) {
	c.refresh(c.stack.Flatten())
}

// StackPopped indicates an item was deleted.
func (c *Crumbs) StackPopped(_, _ Component) {
	c.refresh(c.stack.Flatten())
}

// StackTop indicates the top of the stack.
func (c *Crumbs) StackTop(Component) {
	c.refresh(c.stack.Flatten())
}

func (c *Crumbs) refresh(crumbs []string) {
	c.Clear()
	last := len(crumbs) - 1
	for i, crumb := range crumbs {
		crumb = strings.ReplaceAll(strings.ToLower(crumb), " ", "")
		if i == last {
			_, _ = fmt.Fprintf(c, "[black:yellow:b] <%s> [-:-:-] ", crumb)
			continue
		}
		_, _ = fmt.Fprintf(c, "[gray::-] <%s> [-:-:-] ", crumb)
	}
}
