// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// IndicatorMode represents the current input mode.
type IndicatorMode int

const (
	// ModeNormal is the default navigation mode.
	ModeNormal IndicatorMode = iota
	// ModeFilter is for typing a filter (/ prefix).
	ModeFilter
)

// Mode indicators.
const (
	IndicatorNormal = "▦"
	IndicatorFilter = "🔍"
)

// CmdIndicator displays the current mode and accepts filter input.
type CmdIndicator struct {
	*tview.TextView

	mode      IndicatorMode
	text      string
	applied   string
	active    bool
	activeFn  func(bool)
	executeFn func(string)
	cancelFn  func()
}

// NewCmdIndicator creates a new command indicator.
func NewCmdIndicator() *CmdIndicator {
	c := &CmdIndicator{
		TextView: tview.NewTextView(),
		mode:     ModeNormal,
	}

	c.SetDynamicColors(true)
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextColor(tcell.ColorWhite)
	c.refresh()

	return c
}

// SetActiveFn sets the callback when active state changes.
func (c *CmdIndicator) SetActiveFn(fn func(bool)) {
	c.activeFn = fn
}

// SetExecuteFn sets the callback when a filter is submitted.
func (c *CmdIndicator) SetExecuteFn(fn func(string)) {
	c.executeFn = fn
}

// SetCancelFn sets the callback when input is cancelled.
func (c *CmdIndicator) SetCancelFn(fn func()) {
	c.cancelFn = fn
}

// Activate enters filter mode, starting from the applied filter.
func (c *CmdIndicator) Activate() {
	c.mode = ModeFilter
	c.text = c.applied
	c.active = true
	c.refresh()
	if c.activeFn != nil {
		c.activeFn(true)
	}
}

// Deactivate exits input mode.
func (c *CmdIndicator) Deactivate() {
	c.active = false
	c.mode = ModeNormal
	c.text = ""
	c.refresh()
	if c.activeFn != nil {
		c.activeFn(false)
	}
}

// IsActive returns whether input mode is active.
func (c *CmdIndicator) IsActive() bool {
	return c.active
}

// Mode returns the current mode.
func (c *CmdIndicator) Mode() IndicatorMode {
	return c.mode
}

// Text returns the current input text.
func (c *CmdIndicator) Text() string {
	return c.text
}

// Applied returns the last submitted filter.
func (c *CmdIndicator) Applied() string {
	return c.applied
}

// SetApplied records a filter applied elsewhere, ie from the command line.
func (c *CmdIndicator) SetApplied(s string) {
	c.applied = s
	c.refresh()
}

// HandleKey processes keyboard input when active.
func (c *CmdIndicator) HandleKey(evt *tcell.EventKey) *tcell.EventKey {
	if !c.active {
		return evt
	}

	switch evt.Key() {
	case tcell.KeyEsc:
		c.Deactivate()
		if c.cancelFn != nil {
			c.cancelFn()
		}
		return nil

	case tcell.KeyEnter:
		text := c.text
		c.applied = text
		c.Deactivate()
		if c.executeFn != nil {
			c.executeFn(text)
		}
		return nil

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(c.text); len(r) > 0 {
			c.text = string(r[:len(r)-1])
			c.refresh()
		}
		return nil

	case tcell.KeyRune:
		c.text += string(evt.Rune())
		c.refresh()
		return nil
	}

	return evt
}

func (c *CmdIndicator) refresh() {
	switch {
	case c.active:
		c.TextView.SetText(IndicatorFilter + "/" + tview.Escape(c.text) + "[black:white] [-:-]")
	case c.applied != "":
		c.TextView.SetText(IndicatorFilter + "/" + tview.Escape(c.applied))
	default:
		c.TextView.SetText(IndicatorNormal + ">")
	}
}

// Reset clears the indicator and the applied filter.
func (c *CmdIndicator) Reset() {
	c.mode = ModeNormal
	c.text = ""
	c.applied = ""
	c.active = false
	c.refresh()
}
