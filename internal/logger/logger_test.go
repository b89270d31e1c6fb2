package logger_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagegrid/pagegrid/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	uu := map[string]struct {
		s   string
		e   slog.Level
		err bool
	}{
		"blank": {e: slog.LevelInfo},
		"debug": {s: "DEBUG", e: slog.LevelDebug},
		"warn":  {s: "warning", e: slog.LevelWarn},
		"error": {s: "error", e: slog.LevelError},
		"toast": {s: "loud", e: slog.LevelInfo, err: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			l, err := logger.ParseLevel(u.s)
			assert.Equal(t, u.err, err != nil)
			assert.Equal(t, u.e, l)
		})
	}
}

func TestNewFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "pagegrid.log")
	l, err := logger.New(logger.Options{Level: "warn", File: p})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("Load failed", slog.String("source", "demo"))
	require.NoError(t, l.Close())

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), `level=warn msg="Load failed" source=demo`)
}

func TestNewBadLevel(t *testing.T) {
	_, err := logger.New(logger.Options{Level: "loud"})
	assert.Error(t, err)
}
