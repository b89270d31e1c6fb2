// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// FlashDelay sets the flash auto-clear delay.
const FlashDelay = 5 * time.Second

// FlashLevel represents flash message severity.
type FlashLevel int

const (
	// FlashInfo represents an info message.
	FlashInfo FlashLevel = iota
	// FlashWarn represents a warning message.
	FlashWarn
	// FlashErr represents an error message.
	FlashErr
)

// Flash shows transient status messages.
type Flash struct {
	*tview.TextView

	queue  func(func())
	delay  time.Duration
	level  FlashLevel
	cancel context.CancelFunc
	mx     sync.RWMutex
}

// NewFlash returns a flash bar drawing through the queue function.
// A nil queue updates in place.
func NewFlash(queue func(func())) *Flash {
	if queue == nil {
		queue = func(f func()) { f() }
	}
	f := Flash{
		TextView: tview.NewTextView(),
		queue:    queue,
		delay:    FlashDelay,
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)

	return &f
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.setMessage(FlashInfo, msg)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...any) {
	f.Info(fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) {
	f.setMessage(FlashWarn, msg)
}

// Warnf displays a formatted warning message.
func (f *Flash) Warnf(format string, args ...any) {
	f.Warn(fmt.Sprintf(format, args...))
}

// Err displays an error message.
func (f *Flash) Err(err error) {
	if err != nil {
		f.setMessage(FlashErr, err.Error())
	}
}

// Errf displays a formatted error message.
func (f *Flash) Errf(format string, args ...any) {
	f.setMessage(FlashErr, fmt.Sprintf(format, args...))
}

// Level returns the level of the last message.
func (f *Flash) Level() FlashLevel {
	f.mx.RLock()
	defer f.mx.RUnlock()

	return f.level
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.mx.Lock()
	f.stopTimer()
	f.mx.Unlock()

	f.queue(func() { f.TextView.Clear() })
}

func (f *Flash) setMessage(level FlashLevel, msg string) {
	if msg == "" {
		f.Clear()
		return
	}

	f.mx.Lock()
	f.stopTimer()
	f.level = level
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	delay := f.delay
	f.mx.Unlock()

	f.queue(func() {
		f.TextView.Clear()
		f.SetTextColor(flashColor(level))
		fmt.Fprint(f.TextView, tview.Escape(flashPrefix(level)+" "+msg))
	})

	go f.autoClear(ctx, delay)
}

// stopTimer expects the lock to be held.
func (f *Flash) stopTimer() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Flash) autoClear(ctx context.Context, delay time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(delay):
		f.Clear()
	}
}

func flashColor(level FlashLevel) tcell.Color {
	switch level {
	case FlashWarn:
		return tcell.ColorYellow
	case FlashErr:
		return tcell.ColorRed
	default:
		return tcell.ColorGreen
	}
}

func flashPrefix(level FlashLevel) string {
	switch level {
	case FlashWarn:
		return "[WARN]"
	case FlashErr:
		return "[ERROR]"
	default:
		return "[INFO]"
	}
}
