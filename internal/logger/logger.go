package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DefaultMaxSizeMB is the default log file size before rotation.
	DefaultMaxSizeMB = 10

	// DefaultMaxBackups is the default number of rotated files to keep.
	DefaultMaxBackups = 3
)

// Options configures the application logger.
type Options struct {
	// Level is one of debug, info, warn or error.
	Level string

	// File routes logs to a rotated file. Blank logs to stderr.
	File string

	MaxSizeMB  int
	MaxBackups int
}

// Logger carries the configured slog logger and its sink.
type Logger struct {
	*slog.Logger

	closer io.Closer
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}

	return l.closer.Close()
}

// ParseLevel converts a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "err", "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
}

// New builds a logger. Terminals get a colored handler, files and pipes a
// text handler.
func New(opts Options) (*Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, DefaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, DefaultMaxBackups),
			MaxAge:     28,
			Compress:   true,
		}
		return &Logger{Logger: slog.New(newTextHandler(lj, lvl)), closer: lj}, nil
	}

	if isTerminal(os.Stderr) {
		return &Logger{Logger: slog.New(newTerminalHandler(os.Stderr, lvl))}, nil
	}

	return &Logger{Logger: slog.New(newTextHandler(os.Stderr, lvl))}, nil
}

func newTextHandler(w io.Writer, lvl slog.Leveler) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				return slog.String(a.Key, strings.ToLower(a.Value.String()))
			}
			return a
		},
	})
}

func newTerminalHandler(w io.Writer, lvl slog.Leveler) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		NoColor:    runtime.GOOS == "windows",
		Level:      lvl,
		TimeFormat: time.Kitchen,
	})
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}

	return v
}
