// Package logging builds the application logger. Records are written by zap and
// exposed through log/slog so that components depend only on *slog.Logger.
package logging

import (
	"fmt"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Development switches to the human-readable console encoder.
	Development bool
}

// New returns a slog logger backed by zap and a sync function to flush buffered
// entries on shutdown.
func New(opts Options) (*slog.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
	}

	cfg := zap.NewProductionConfig()
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	zl, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build zap logger: %w", err)
	}

	return FromCore(zl.Core()), zl.Sync, nil
}

// FromCore wraps an existing zap core.
func FromCore(core zapcore.Core) *slog.Logger {
	return slog.New(zapslog.NewHandler(core))
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return FromCore(zapcore.NewNopCore())
}
