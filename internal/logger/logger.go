// Package logger builds the zerolog logger shared by the HTTP layer, the
// database layer and the CLI.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"fsanano/go-orders/internal/config"
)

func New(cfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

func NewWithWriter(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "go-orders").
		Logger()
}
