// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package view

import (
	"context"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/pagegrid/pagegrid/internal/ui"
)

const helpTitle = "help"

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection groups bindings under a header.
type HelpSection struct {
	Header string
	Binds  []HelpBind
}

// Help displays the key bindings of the component below it.
type Help struct {
	*tview.Table

	hints   ui.MenuHints
	actions *ui.KeyActions
	closeFn func()
}

// NewHelp returns a help view for the given component hints.
func NewHelp(hh ui.MenuHints) *Help {
	return &Help{
		Table:   tview.NewTable(),
		hints:   hh,
		actions: ui.NewKeyActions(),
	}
}

// Name returns the component name.
func (*Help) Name() string { return helpTitle }

// SetCloseFn sets the callback when help is closed.
func (h *Help) SetCloseFn(fn func()) {
	h.closeFn = fn
}

// Init builds the help table.
func (h *Help) Init(context.Context) error {
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)

	h.actions.Bulk(ui.KeyMap{
		tcell.KeyEsc:   ui.NewKeyAction("Close", h.closeCmd, true),
		tcell.KeyEnter: ui.NewKeyAction("Close", h.closeCmd, false),
		ui.KeyHelp:     ui.NewKeyAction("Close", h.closeCmd, false),
		ui.KeyQ:        ui.NewKeyAction("Close", h.closeCmd, false),
	})
	h.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		out, _ := h.actions.Handle(evt)
		return out
	})
	h.build()

	return nil
}

// Start does nothing.
func (*Help) Start() {}

// Stop does nothing.
func (*Help) Stop() {}

// Hints returns the help menu hints.
func (h *Help) Hints() ui.MenuHints {
	return h.actions.Hints()
}

func (h *Help) closeCmd(*tcell.EventKey) *tcell.EventKey {
	if h.closeFn != nil {
		h.closeFn()
	}
	return nil
}

// Sections returns the help sections, grid bindings first.
func (h *Help) Sections() []HelpSection {
	grid := make([]HelpBind, 0, len(h.hints))
	for _, hint := range h.hints {
		if hint.IsBlank() {
			continue
		}
		grid = append(grid, HelpBind{Key: "<" + hint.Mnemonic + ">", Desc: hint.Description})
	}

	return []HelpSection{
		{Header: "GRID", Binds: grid},
		{Header: "GENERAL", Binds: []HelpBind{
			{"</>", "Filter"},
			{"<esc>", "Clear Filter"},
			{"<?>", "Help"},
			{"<q>", "Quit"},
			{"<ctrl-c>", "Quit"},
		}},
		{Header: "NAVIGATION", Binds: []HelpBind{
			{"<j>", "Down"},
			{"<k>", "Up"},
			{"<g>", "Top"},
			{"<G>", "Bottom"},
		}},
	}
}

// build lays out each section as a key column, a description column and a spacer.
func (h *Help) build() {
	h.Clear()
	ss := h.Sections()

	var maxRows int
	for _, s := range ss {
		maxRows = max(maxRows, len(s.Binds))
	}

	const colWidth = 3
	for i, s := range ss {
		base := i * colWidth
		h.SetCell(0, base, tview.NewTableCell(s.Header).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))

		for r, b := range s.Binds {
			h.SetCell(r+1, base, tview.NewTableCell(tview.Escape(b.Key)).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false))
			h.SetCell(r+1, base+1, tview.NewTableCell(b.Desc).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1))
		}

		if i == len(ss)-1 {
			continue
		}
		for r := 0; r <= maxRows; r++ {
			h.SetCell(r, base+2, tview.NewTableCell("").
				SetSelectable(false).
				SetExpansion(1))
		}
	}

	h.SetCell(maxRows+2, 0, tview.NewTableCell("<esc> to close").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false))
}
