// Package http implements the client side of the Parse REST protocol: request encoding,
// response decoding and the round-tripper chain every outbound call passes through.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	"github.com/AyoPrez/sobuu-sub000/internal/infra/logging"
)

const (
	ApplicationIDHeader = "X-Parse-Application-Id"
	RESTAPIKeyHeader    = "X-Parse-REST-API-Key"
	SessionTokenHeader  = "X-Parse-Session-Token"
	TraceIDHeader       = "X-Request-ID"

	// StatusInvalidSession is the non-standard status the backend answers for an expired session.
	// It is a failure despite lying in the 2xx range.
	StatusInvalidSession = 209

	maxBodySize = 8 << 20
)

var (
	// ErrInvalidBaseURL is returned when the configured base URL cannot be parsed.
	ErrInvalidBaseURL = errors.New("invalid base url")
	// ErrDecodePayload is returned when a successful response body is not the expected JSON.
	ErrDecodePayload = errors.New("decode payload")
)

// ClientConfig holds configuration for the Parse REST client.
type ClientConfig struct {
	// BaseURL is the versioned root of the backend, ending with a slash
	BaseURL string `env:"BASE_URL" default:"https://parseapi.back4app.com/"`
	// ApplicationID identifies the app to the backend
	ApplicationID string `env:"APPLICATION_ID" default:""`
	// RESTAPIKey authorizes the app against the REST API
	RESTAPIKey string `env:"REST_API_KEY" default:""`
	// Timeout bounds a single request including reading the body
	Timeout time.Duration `env:"TIMEOUT" default:"30s"`
}

// Endpoint describes one backend route.
type Endpoint struct {
	Method string
	Path   string
	// Result marks cloud-function replies wrapped as {"result": ...}.
	Result bool
	// StatusErrors makes failed replies fail with *StatusError instead of
	// returning a Response carrying the error body.
	StatusErrors bool
}

// Function returns the endpoint of the cloud function name.
func Function(name string) Endpoint {
	return Endpoint{
		Method: http.MethodPost,
		Path:   "functions/" + name,
		Result: true,
	}
}

// Resource returns the endpoint of a plain REST resource.
func Resource(method, path string) Endpoint {
	return Endpoint{
		Method: method,
		Path:   path,
	}
}

// Response is a completed exchange with a 2xx payload or a failure error body.
type Response[T any] struct {
	StatusCode int
	Payload    *T
	ErrorBody  []byte
}

// Failed reports whether the backend answered with a failure status.
func (r *Response[T]) Failed() bool {
	return r.StatusCode < http.StatusOK ||
		r.StatusCode >= http.StatusMultipleChoices ||
		r.StatusCode == StatusInvalidSession
}

// StatusError is returned for failed replies of endpoints with StatusErrors set.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return "unexpected status " + strconv.Itoa(e.StatusCode)
}

// Client performs Parse REST calls.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	log        logging.Logger
}

// NewClient creates a Client with the given configuration.
// If httpClient is nil, a client with cfg.Timeout is used. The transport of the given client
// is wrapped with tracing, logging and application-key round trippers; the caller's client
// is not modified.
func NewClient(cfg ClientConfig, httpClient *http.Client) (*Client, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}

	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	log := logging.GetLogger("infra.transport.http")

	wrapped := *httpClient
	wrapped.Transport = NewTracingRoundTripper(
		NewLoggingRoundTripper(
			NewApplicationRoundTripper(httpClient.Transport, cfg.ApplicationID, cfg.RESTAPIKey),
			log,
		),
	)

	return &Client{
		httpClient: &wrapped,
		baseURL:    baseURL,
		log:        log,
	}, nil
}

// Call performs one request to ep and decodes a 2xx payload into T.
// The credential is sent as session token when not blank. params are sent as query string
// for GET and as form body otherwise.
// Transport failures and, with ep.StatusErrors, failed replies are returned as errors;
// every other reply is returned as a Response.
func Call[T any](
	ctx context.Context,
	c *Client,
	ep Endpoint,
	credential domain.Credential,
	params url.Values,
) (*Response[T], error) {
	req, err := c.newRequest(ctx, ep, credential, params)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ep.Method, ep.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	out := &Response[T]{StatusCode: resp.StatusCode}

	if out.Failed() {
		if ep.StatusErrors {
			return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
		}

		out.ErrorBody = body

		return out, nil
	}

	out.Payload, err = decode[T](ep, body)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) newRequest(
	ctx context.Context,
	ep Endpoint,
	credential domain.Credential,
	params url.Values,
) (*http.Request, error) {
	target := c.baseURL.ResolveReference(&url.URL{Path: ep.Path})

	var body io.Reader

	if ep.Method == http.MethodGet {
		target.RawQuery = params.Encode()
	} else if params != nil {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, target.String(), body)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	req.Header.Set("Accept", "application/json")

	if !credential.IsBlank() {
		req.Header.Set(SessionTokenHeader, string(credential))
	}

	return req, nil
}

func decode[T any](ep Endpoint, body []byte) (*T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	if ep.Result {
		var envelope struct {
			Result json.RawMessage `json:"result"`
		}

		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, errors.Join(ErrDecodePayload, err)
		}

		body = envelope.Result
	}

	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}

	payload := new(T)
	if err := json.Unmarshal(body, payload); err != nil {
		return nil, errors.Join(ErrDecodePayload, err)
	}

	return payload, nil
}

// SetInt adds key to params when value is not nil.
func SetInt(params url.Values, key string, value *int) {
	if value != nil {
		params.Set(key, strconv.Itoa(*value))
	}
}

// SetFloat adds key to params when value is not nil.
func SetFloat(params url.Values, key string, value *float64) {
	if value != nil {
		params.Set(key, strconv.FormatFloat(*value, 'f', -1, 64))
	}
}

// SetBool adds key to params.
func SetBool(params url.Values, key string, value bool) {
	params.Set(key, strconv.FormatBool(value))
}
