// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package ui

import (
	"fmt"
	"strconv"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	menuIndexFmt = " [yellow::b]<%d>[white::-] %s "
	menuPlainFmt = " [yellow::b]<%s>[white::-] %s "
	maxRows      = 2
)

// Menu presents the key hints of the top component.
type Menu struct {
	*tview.Table
}

// NewMenu returns a new menu.
func NewMenu() *Menu {
	m := &Menu{
		Table: tview.NewTable(),
	}
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetBorderPadding(0, 0, 1, 1)

	return m
}

// HydrateMenu populate menu ui from hints. Hints fill rows first, then
// columns.
func (m *Menu) HydrateMenu(hh MenuHints) {
	m.Clear()

	for i, h := range hh.Visible() {
		c := tview.NewTableCell(formatMenu(h))
		c.SetBackgroundColor(tcell.ColorDefault)
		m.SetCell(i%maxRows, i/maxRows, c)
	}
}

func formatMenu(h MenuHint) string {
	if h.Mnemonic == "" || h.Description == "" {
		return ""
	}
	if i, err := strconv.Atoi(h.Mnemonic); err == nil {
		return fmt.Sprintf(menuIndexFmt, i, h.Description)
	}

	return fmt.Sprintf(menuPlainFmt, h.Mnemonic, h.Description)
}

// StackPushed notifies a component was added.
func (m *Menu) StackPushed(c Component) {
	m.HydrateMenu(c.Hints())
}

// StackPopped notifies a component was removed.
func (m *Menu) StackPopped(_, top Component) {
	if top == nil {
		m.Clear()
		return
	}
	m.HydrateMenu(top.Hints())
}

// StackTop notifies the top component.
func (m *Menu) StackTop(t Component) {
	m.HydrateMenu(t.Hints())
}
