package http

import (
	"net/http"

	context_ "github.com/AyoPrez/sobuu-sub000/internal/infra/context"
)

// TracingRoundTripper adds request tracing to outbound calls.
// It forwards the trace ID of the request context as X-Request-ID, generating a new UUIDv7
// when the context carries none. The trace ID is added to the request context.
type TracingRoundTripper struct {
	next http.RoundTripper
}

// NewTracingRoundTripper wraps next. A nil next uses http.DefaultTransport.
func NewTracingRoundTripper(next http.RoundTripper) *TracingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &TracingRoundTripper{next: next}
}

func (rt *TracingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, traceID := context_.EnsureTraceID(req.Context())

	req = req.Clone(ctx)
	if req.Header.Get(TraceIDHeader) == "" {
		req.Header.Set(TraceIDHeader, traceID)
	}

	return rt.next.RoundTrip(req) //nolint:wrapcheck
}
