package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/AyoPrez/sobuu-sub000/internal/infra/logging"
)

// LoggingRoundTripper logs outbound request and response details.
// It logs requests at DEBUG level and responses at a level determined by the status code:
// - 5xx: ERROR
// - 4xx: WARN
// - Other: DEBUG.
// Transport failures are logged at WARN. Headers are never logged.
type LoggingRoundTripper struct {
	next http.RoundTripper
	log  logging.Logger
}

// NewLoggingRoundTripper wraps next. A nil next uses http.DefaultTransport.
func NewLoggingRoundTripper(next http.RoundTripper, log logging.Logger) *LoggingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &LoggingRoundTripper{next: next, log: log}
}

func (rt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	rt.log.DebugContext(ctx, "request", slog.Group("http",
		"uri", req.URL.Path,
		"method", req.Method,
	))

	start := time.Now()

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		rt.log.WarnContext(ctx, "request failed", slog.Group("http",
			"uri", req.URL.Path,
			"method", req.Method,
			"duration", time.Since(start),
		), "error", err)

		return nil, err //nolint:wrapcheck
	}

	var level logging.Level

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		level = logging.LevelError
	case resp.StatusCode >= http.StatusBadRequest:
		level = logging.LevelWarn
	default:
		level = logging.LevelDebug
	}

	rt.log.Log(ctx, level, "response", slog.Group("http",
		"uri", req.URL.Path,
		"method", req.Method,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	))

	return resp, nil
}
