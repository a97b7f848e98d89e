package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/AyoPrez/sobuu-sub000/internal/infra/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: " INFO ", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelWarn},
		{in: "", want: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := logging.ParseLevel(tt.in, slog.LevelWarn); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	got := logging.ParseFilter("remote:info, infra.transport:error,broken,svc:")

	want := map[string]slog.Level{
		"remote":          slog.LevelInfo,
		"infra.transport": slog.LevelError,
		"svc":             slog.LevelDebug,
	}

	if len(got) != len(want) {
		t.Fatalf("ParseFilter() = %v, want %v", got, want)
	}

	for name, level := range want {
		if got[name] != level {
			t.Errorf("level for %q = %v, want %v", name, got[name], level)
		}
	}
}

//nolint:paralleltest
func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer

	logging.Configure(context.Background(), logging.LoggerConfig{
		Level:        "info",
		Filter:       "noisy:error",
		Redact:       true,
		OutputHandle: &buf,
	}, "sobuu-test")

	logging.GetLogger("svc.booksvc").InfoContext(context.Background(), "searched", "term", "dune")
	logging.GetLogger("noisy.part").WarnContext(context.Background(), "dropped")
	logging.GetLogger("svc.booksvc").DebugContext(context.Background(), "below global level")

	out := buf.String()

	for _, want := range []string{"INFO searched", "app=sobuu-test", "logger=svc.booksvc", "term=dune"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	for _, unwanted := range []string{"dropped", "below global level", "\033["} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output %q should not contain %q", out, unwanted)
		}
	}

	logging.Configure(context.Background(), logging.LoggerConfig{Output: "discard"}, "sobuu-test")
}
