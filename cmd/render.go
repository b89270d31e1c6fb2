package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/pagegrid/pagegrid/internal/config"
	"github.com/pagegrid/pagegrid/internal/model"
	"github.com/pagegrid/pagegrid/internal/model1"
	"github.com/pagegrid/pagegrid/internal/render"
)

type renderFlags struct {
	format string
	pages  int
	out    string
	save   bool
}

var (
	rFlags    renderFlags
	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render grid pages without the terminal ui",
		Long:  `render loads the first pages of the source and writes them as an html page or a plain text table.`,
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
)

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&rFlags.format, "format", "f", "text", "Output format (html, text)")
	f.IntVarP(&rFlags.pages, "pages", "p", 1, "Number of pages to load")
	f.StringVarP(&rFlags.out, "out", "o", "", "Output file. Defaults to stdout")
	f.BoolVar(&rFlags.save, "save", false, "Save the output in the renders directory")
}

// loadErrors records collection load failures.
type loadErrors struct {
	err error
	mx  sync.Mutex
}

func (*loadErrors) CollectionChanged() {}
func (*loadErrors) SortChanged(model1.SortDescriptor) {}

func (l *loadErrors) CollectionLoadFailed(err error) {
	l.mx.Lock()
	defer l.mx.Unlock()

	l.err = err
}

func (l *loadErrors) Err() error {
	l.mx.Lock()
	defer l.mx.Unlock()

	return l.err
}

func runRender(cmd *cobra.Command, _ []string) error {
	if rFlags.pages < 1 {
		return fmt.Errorf("invalid page count %d", rFlags.pages)
	}
	r, err := render.For(rFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(pgFlags)
	if err != nil {
		return err
	}
	l, err := initLogger(cfg, false)
	if err != nil {
		return err
	}
	defer l.Close()

	ctx := cmdContext(cmd)
	s, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	var errs loadErrors
	s.rows.AddListener(&errs)
	defer s.rows.RemoveListener(&errs)

	s.rows.Refresh(ctx)
	for i := 1; i < rFlags.pages; i++ {
		if !s.rows.LoadNext(ctx) {
			break
		}
	}
	if err := errs.Err(); err != nil {
		return fmt.Errorf("failed to load %s: %w", s.src.Name(), err)
	}

	w, path, err := renderOutput(cmd.OutOrStdout(), s.src.Name())
	if err != nil {
		return err
	}
	if c, ok := w.(io.Closer); ok {
		defer c.Close()
	}

	g := model.NewGrid(s.rows, nil)
	if err := r.Render(w, render.NewDocument(s.src.Name(), g, nil)); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if path != "" {
		slog.Info("Grid rendered",
			slog.String("path", path),
			slog.Int("rows", s.rows.Len()),
		)
	}

	return nil
}

// renderOutput opens the render destination.
func renderOutput(stdout io.Writer, name string) (io.Writer, string, error) {
	path := rFlags.out
	if path == "" && rFlags.save {
		path = filepath.Join(config.AppDumpsDir, dumpName(name, rFlags.format, time.Now()))
	}
	if path == "" {
		return stdout, "", nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	return f, path, nil
}

func dumpName(name, format string, t time.Time) string {
	ext := "txt"
	if format == "html" {
		ext = "html"
	}
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, name)

	return fmt.Sprintf("%s-%d.%s", strings.Trim(clean, "-"), t.Unix(), ext)
}
