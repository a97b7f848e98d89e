package http

import (
	"net/http"
)

// ApplicationRoundTripper identifies the app to the backend.
// It sets the application id and REST API key headers on every request; empty values are skipped.
type ApplicationRoundTripper struct {
	next          http.RoundTripper
	applicationID string
	restAPIKey    string
}

// NewApplicationRoundTripper wraps next. A nil next uses http.DefaultTransport.
func NewApplicationRoundTripper(next http.RoundTripper, applicationID, restAPIKey string) *ApplicationRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &ApplicationRoundTripper{
		next:          next,
		applicationID: applicationID,
		restAPIKey:    restAPIKey,
	}
}

func (rt *ApplicationRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if rt.applicationID != "" {
		req.Header.Set(ApplicationIDHeader, rt.applicationID)
	}

	if rt.restAPIKey != "" {
		req.Header.Set(RESTAPIKeyHeader, rt.restAPIKey)
	}

	return rt.next.RoundTrip(req) //nolint:wrapcheck
}
