package observability_test

import (
	"testing"

	"github.com/rs/zerolog"

	"hotel_booking/internal/adapters/observability"
)

func TestNewLogger_LevelFromEnv(t *testing.T) {
	if l := observability.NewLogger("dev"); l.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("dev level: %s", l.GetLevel())
	}
	if l := observability.NewLogger("prod"); l.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("prod level: %s", l.GetLevel())
	}
}
