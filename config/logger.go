package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the console logger the demo writes to.
func NewLogger(cfg Game, out io.Writer) zerolog.Logger {
	lvl, err := cfg.Level()
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
