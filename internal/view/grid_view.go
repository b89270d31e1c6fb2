// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pagegrid/pagegrid/internal/model"
	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/pagegrid/pagegrid/internal/ui"
)

type queuer interface {
	SetQueueFn(func(func()))
}

// GridView hosts the grid component and reports on its collection.
type GridView struct {
	ui.Component

	app  *App
	rows *model.Collection[model1.Row, model1.Filter]
	run  func(func())
	ctx  context.Context
	mx   sync.RWMutex
}

// NewGridView creates the grid component from the registry.
func NewGridView(app *App, reg *ui.Registry, p ui.GridParams) (*GridView, error) {
	c, err := reg.Create(ui.GridComponent, p)
	if err != nil {
		return nil, fmt.Errorf("grid view: %w", err)
	}

	return &GridView{
		Component: c,
		app:       app,
		rows:      p.Rows,
		run:       func(f func()) { go f() },
		ctx:       context.Background(),
	}, nil
}

// Init initializes the grid component.
func (v *GridView) Init(ctx context.Context) error {
	v.mx.Lock()
	v.ctx = ctx
	v.mx.Unlock()

	if q, ok := v.Component.(queuer); ok {
		q.SetQueueFn(v.app.QueueUpdateDraw)
	}

	return v.Component.Init(ctx)
}

// Start starts the grid and loads the first page when nothing was loaded yet.
func (v *GridView) Start() {
	v.Component.Start()
	v.rows.AddListener(v)

	if v.rows.Len() > 0 || v.rows.Done() || v.rows.Updating() {
		return
	}
	ctx := v.context()
	v.run(func() { v.rows.Refresh(ctx) })
}

// Stop stops the grid.
func (v *GridView) Stop() {
	v.rows.RemoveListener(v)
	v.Component.Stop()
}

// SetFilter applies a new filter and reloads.
func (v *GridView) SetFilter(q string) {
	slog.Debug("Filter changed", slog.String("query", q))
	ctx := v.context()
	v.run(func() { v.rows.SetFilter(ctx, model1.Filter{Query: q}) })
}

// CollectionChanged implements model.CollectionListener.
func (*GridView) CollectionChanged() {}

// CollectionLoadFailed implements model.CollectionListener.
func (v *GridView) CollectionLoadFailed(err error) {
	slog.Error("Page load failed",
		slog.String("view", v.Name()),
		slog.Int("offset", v.rows.Len()),
		slog.Any("error", err),
	)
	v.app.Flash().Err(err)
}

// SortChanged implements model.CollectionListener.
func (v *GridView) SortChanged(s model1.SortDescriptor) {
	slog.Debug("Sort changed", slog.String("sort", string(s)))
	if s.IsBlank() {
		return
	}
	v.app.Flash().Infof("Sorted by %s (%s)", s.Key(), s.Direction())
}

func (v *GridView) context() context.Context {
	v.mx.RLock()
	defer v.mx.RUnlock()

	return v.ctx
}
