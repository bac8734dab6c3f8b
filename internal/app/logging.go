package app

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog logger writing to w. format is "console" for
// human-readable output or "json".
func NewLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	switch format {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("log format %q (want console or json)", format)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
