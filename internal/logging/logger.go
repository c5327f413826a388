// Package logging builds the zap loggers used across cadet.
// Each subsystem logs through a named category logger so lines can be
// filtered by the "logger" field.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a subsystem logger.
type Category string

const (
	CategoryGateway  Category = "gateway"  // HTTP endpoint, request lifecycle
	CategoryProvider Category = "provider" // Generative-AI provider calls
	CategoryClient   Category = "client"   // Gateway client
	CategoryUI       Category = "ui"       // Interactive terminal UI
	CategoryCLI      Category = "cli"      // One-shot commands
)

// Options mirrors config.LoggingConfig so this package stays import-free.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	File   string // empty = stderr
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(orDefault(opts.Level, "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch orDefault(opts.Format, "json") {
	case "json":
	case "text":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q (valid: json, text)", opts.Format)
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewFileOnly builds a logger that never writes to the terminal: it logs
// to opts.File when set and is a no-op otherwise. Used while the TUI owns
// the screen.
func NewFileOnly(opts Options) (*zap.Logger, error) {
	if opts.File == "" {
		return zap.NewNop(), nil
	}
	return New(opts)
}

// Get returns the category logger derived from base. A nil base yields a
// no-op logger.
func Get(base *zap.Logger, cat Category) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(string(cat))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
