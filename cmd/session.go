package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pagegrid/pagegrid/internal/config"
	"github.com/pagegrid/pagegrid/internal/config/data"
	"github.com/pagegrid/pagegrid/internal/dao"
	"github.com/pagegrid/pagegrid/internal/logger"
	"github.com/pagegrid/pagegrid/internal/model"
	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/pagegrid/pagegrid/internal/ui"
)

// session ties a configured source to its paged collection.
type session struct {
	src  dao.Source
	rows *model.Collection[model1.Row, model1.Filter]
	wide *ui.Toggle
}

// loadConfig loads the configuration file and applies the cli flags.
// An explicit --config file must exist.
func loadConfig(flags *data.Flags) (*config.Config, error) {
	if err := config.InitLocs(); err != nil {
		return nil, fmt.Errorf("failed to initialize locations: %w", err)
	}

	cfg := config.NewConfig()
	path, force := config.AppConfigFile, false
	if config.IsStringSet(flags.ConfigFile) {
		path, force = *flags.ConfigFile, true
	}
	if err := cfg.Load(path, force); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Refine(flags); err != nil {
		return nil, err
	}
	_ = cfg.Save(false)

	return cfg, nil
}

// initLogger installs the default logger. The terminal ui owns the screen so
// it always logs to a file.
func initLogger(cfg *config.Config, tui bool) (*logger.Logger, error) {
	opts := cfg.Pagegrid.LoggerOptions()
	if tui && opts.File == "" {
		opts.File = config.AppLogFile
	}
	if opts.File != "" {
		if err := config.InitLogLoc(opts.File); err != nil {
			return nil, fmt.Errorf("failed to initialize log location: %w", err)
		}
	}

	l, err := logger.New(opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(l.Logger)

	return l, nil
}

func newSession(ctx context.Context, cfg *config.Config) (*session, error) {
	spec, err := cfg.Pagegrid.SourceSpec()
	if err != nil {
		return nil, err
	}
	src, err := dao.SourceFor(ctx, spec)
	if err != nil {
		return nil, err
	}
	s := session{src: src, wide: ui.NewToggle(cfg.Pagegrid.UI.Wide)}

	if !cfg.Pagegrid.HasColumns() {
		if err := probeColumns(ctx, cfg, src); err != nil {
			s.Close()
			return nil, err
		}
	}

	s.rows, err = model.NewCollection(model.Options[model1.Row, model1.Filter]{
		Request:      dao.RequestFunc(src),
		Limit:        cfg.Pagegrid.Limit,
		Filter:       cfg.Pagegrid.InitialFilter(),
		DefaultSort:  cfg.Pagegrid.SortDescriptor(),
		EmptyMessage: cfg.Pagegrid.EmptyMessage,
		Columns:      cfg.Pagegrid.GridColumns(s.wide.On),
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	slog.Debug("Session ready",
		slog.String("source", src.Name()),
		slog.Int("limit", cfg.Pagegrid.Limit),
	)

	return &s, nil
}

// probeColumns derives the columns from the first row of the source.
func probeColumns(ctx context.Context, cfg *config.Config, src dao.Source) error {
	rows, err := src.Fetch(ctx, dao.Request{Limit: 1})
	if err != nil {
		return fmt.Errorf("failed to probe columns: %w", err)
	}
	if len(rows) == 0 {
		slog.Warn("No rows to derive columns from", slog.String("source", src.Name()))
		return nil
	}
	cfg.Pagegrid.SetColumns(config.ColumnsFor(rows[0].Keys()))

	return nil
}

// Close releases the source.
func (s *session) Close() {
	c, ok := s.src.(dao.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("Source close failed", slog.Any("error", err))
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
