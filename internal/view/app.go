// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/pagegrid/pagegrid/internal/config"
	"github.com/pagegrid/pagegrid/internal/ui"
)

const mainPage = "main"

// Filterable represents a view accepting a filter query.
type Filterable interface {
	SetFilter(string)
}

// App represents the main application container.
type App struct {
	*tview.Application

	version   string
	config    *config.Config
	Main      *tview.Pages
	Content   *ui.Pages
	indicator *ui.CmdIndicator
	menu      *ui.Menu
	crumbs    *ui.Crumbs
	flash     *Flash
	queue     func(func())
	ctx       context.Context
	running   bool
	mx        sync.RWMutex
}

// NewApp returns a new application.
func NewApp(cfg *config.Config, version string) *App {
	a := App{
		Application: tview.NewApplication(),
		version:     version,
		config:      cfg,
		Main:        tview.NewPages(),
		Content:     ui.NewPages(),
		indicator:   ui.NewCmdIndicator(),
		menu:        ui.NewMenu(),
		ctx:         context.Background(),
	}
	a.queue = func(f func()) { go a.Application.QueueUpdateDraw(f) }
	a.flash = NewFlash(a.QueueUpdateDraw)
	a.crumbs = ui.NewCrumbs(a.Content.Stack)
	a.Content.AddListener(a.menu)
	a.Content.AddListener(a.crumbs)

	a.indicator.SetActiveFn(func(active bool) {
		if active {
			a.SetFocus(a.indicator)
			return
		}
		a.SetFocus(a.Content)
	})
	a.indicator.SetExecuteFn(a.applyFilter)

	return &a
}

// Init builds the application layout.
func (a *App) Init(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("no context")
	}
	a.ctx = ctx
	if a.config != nil && a.config.Pagegrid != nil {
		a.EnableMouse(a.config.Pagegrid.UI.EnableMouse)
		a.indicator.SetApplied(a.config.Pagegrid.InitialFilter().Query)
	}

	a.Main.AddPage(mainPage, a.layout(), true, true)
	a.SetRoot(a.Main, true)
	a.SetInputCapture(a.keyboard)

	return nil
}

// Inject initializes a component and shows it.
func (a *App) Inject(c ui.Component) error {
	if err := c.Init(a.ctx); err != nil {
		return fmt.Errorf("init %s: %w", c.Name(), err)
	}
	a.Content.Push(c)
	c.Start()
	a.SetFocus(c)

	return nil
}

// Run starts the application loop.
func (a *App) Run() error {
	a.mx.Lock()
	a.running = true
	a.mx.Unlock()
	slog.Info("Pagegrid started", slog.String("version", a.version))

	return a.Application.Run()
}

// Stop stops the application.
func (a *App) Stop() {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.running = false
	a.Content.Clear()
	a.Application.Stop()
}

// IsRunning returns whether the application is currently running.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.running
}

// Flash returns the flash message handler.
func (a *App) Flash() *Flash {
	return a.flash
}

// QueueUpdateDraw queues a function to be executed on the UI thread.
func (a *App) QueueUpdateDraw(fn func()) {
	a.queue(fn)
}

func (a *App) layout() *tview.Flex {
	top := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.indicator, 0, 1, false).
		AddItem(a.crumbs, 0, 1, false)

	bottom := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.flash, 1, 0, false).
		AddItem(a.menu, 2, 0, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 1, 0, false).
		AddItem(a.Content, 0, 1, true).
		AddItem(bottom, 3, 0, false)
}

// keyboard handles global keyboard events.
func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if a.indicator.IsActive() {
		return a.indicator.HandleKey(evt)
	}
	if a.Content.Current() == helpTitle {
		return evt
	}

	switch ui.AsKey(evt) {
	case ui.KeySlash:
		a.indicator.Activate()
		return nil
	case ui.KeyHelp:
		a.showHelp()
		return nil
	case ui.KeyQ, tcell.KeyCtrlC:
		a.Stop()
		return nil
	case tcell.KeyEsc:
		if a.indicator.Applied() != "" {
			a.indicator.Reset()
			a.applyFilter("")
			return nil
		}
	}

	return evt
}

// applyFilter hands the query to the current view.
func (a *App) applyFilter(q string) {
	if f, ok := a.Content.CurrentPage().(Filterable); ok {
		f.SetFilter(q)
	}
}

func (a *App) showHelp() {
	var hh ui.MenuHints
	if top := a.Content.CurrentPage(); top != nil {
		hh = top.Hints()
	}
	h := NewHelp(hh)
	h.SetCloseFn(func() {
		a.Content.Pop()
		if top := a.Content.CurrentPage(); top != nil {
			top.Start()
			a.SetFocus(top)
		}
	})
	if err := a.Inject(h); err != nil {
		a.flash.Err(err)
	}
}
