package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/pagegrid/pagegrid/internal/config"
	"github.com/pagegrid/pagegrid/internal/config/data"
	"github.com/pagegrid/pagegrid/internal/ui"
	"github.com/pagegrid/pagegrid/internal/view"
)

const appName = config.AppName

var (
	version = "dev"

	pgFlags *data.Flags
	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "A sortable paged data grid for the terminal",
		Long:          `pagegrid browses rows from files, s3 objects, sql tables or http apis one page at a time.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, version)
		},
	}
)

func init() {
	pgFlags = config.NewFlags()
	initPagegridFlags()
	rootCmd.AddCommand(versionCmd, renderCmd)
}

func initPagegridFlags() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(pgFlags.Source, "source", "s", "", "Rows source (file path, s3://, postgres://, mysql://, http(s)://, demo://)")
	pf.IntVar(pgFlags.Limit, "limit", 0, "Page size")
	pf.StringVar(pgFlags.Sort, "sort", "", "Initial sort, ie name-asc or cpu-desc")
	pf.StringVar(pgFlags.Filter, "filter", "", "Initial filter query")
	pf.StringVar(pgFlags.EmptyMessage, "empty-message", "", "Text shown when there are no rows")
	pf.StringVarP(pgFlags.LogLevel, "logLevel", "l", "", "Log level (debug, info, warn, error)")
	pf.StringVar(pgFlags.LogFile, "logFile", "", "Log file path")
	pf.StringVar(pgFlags.ConfigFile, "config", "", "Configuration file path")
	pf.BoolVar(pgFlags.Wide, "wide", false, "Show wide columns")

	// AWS flags for s3 sources
	pf.StringVar(pgFlags.Profile, "profile", "", "AWS profile to use")
	pf.StringVar(pgFlags.Region, "region", "", "AWS region to use")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(pgFlags)
	if err != nil {
		return err
	}
	l, err := initLogger(cfg, true)
	if err != nil {
		return err
	}
	defer l.Close()

	ctx, cancel := context.WithCancel(cmdContext(cmd))
	defer cancel()

	s, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	reg := ui.NewRegistry()
	if err := ui.RegisterGrid(reg); err != nil {
		return err
	}

	app := view.NewApp(cfg, version)
	if err := app.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	gv, err := view.NewGridView(app, reg, ui.GridParams{
		Title: s.src.Name(),
		Rows:  s.rows,
		Wide:  s.wide,
	})
	if err != nil {
		return err
	}
	if err := app.Inject(gv); err != nil {
		return err
	}

	return app.Run()
}
