package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestNew(t *testing.T) {
	t.Run("development logs debug", func(t *testing.T) {
		l := New("development")
		if l.GetLevel() != zerolog.DebugLevel {
			t.Fatalf("expected debug, got %s", l.GetLevel())
		}
		if log.Logger.GetLevel() != zerolog.DebugLevel {
			t.Fatalf("expected global logger to be replaced")
		}
	})

	t.Run("production logs info", func(t *testing.T) {
		l := New("production")
		if l.GetLevel() != zerolog.InfoLevel {
			t.Fatalf("expected info, got %s", l.GetLevel())
		}
	})
}
