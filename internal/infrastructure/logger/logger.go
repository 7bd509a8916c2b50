package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds the process logger and installs it as the zerolog global.
// Development gets a console writer at debug level; other environments log JSON at info.
func New(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var l zerolog.Logger
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "development", "dev", "local":
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	default:
		l = zerolog.New(os.Stderr).
			Level(zerolog.InfoLevel).
			With().Timestamp().Str("service", "repairdesk").Logger()
	}

	log.Logger = l
	return l
}
