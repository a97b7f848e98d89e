package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	context_ "github.com/AyoPrez/sobuu-sub000/internal/infra/context"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
)

type recordedRequest struct {
	method string
	path   string
	query  url.Values
	form   url.Values
	header http.Header
}

type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	raw, _ := io.ReadAll(req.Body)
	form, _ := url.ParseQuery(string(raw))

	r.mu.Lock()
	r.requests = append(r.requests, recordedRequest{
		method: req.Method,
		path:   req.URL.Path,
		query:  req.URL.Query(),
		form:   form,
		header: req.Header.Clone(),
	})
	status, body := r.status, r.body
	r.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (r *recorder) last(t *testing.T) recordedRequest {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.requests) == 0 {
		t.Fatal("no request recorded")
	}

	return r.requests[len(r.requests)-1]
}

func newTestClient(t *testing.T, status int, body string) (*http_.Client, *recorder) {
	t.Helper()

	rec := &recorder{status: status, body: body}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	client, err := http_.NewClient(http_.ClientConfig{
		BaseURL:       srv.URL + "/parse",
		ApplicationID: "app-id",
		RESTAPIKey:    "rest-key",
	}, srv.Client())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	return client, rec
}

type book struct {
	ID    string `json:"objectId"`
	Title string `json:"title"`
}

func TestCallFunctionSendsFormAndHeaders(t *testing.T) {
	t.Parallel()

	client, rec := newTestClient(t, http.StatusOK, `{"result":{"objectId":"b1","title":"Dune"}}`)

	params := url.Values{}
	params.Set("bookId", "b1")
	http_.SetInt(params, "page", new(int))

	resp, err := http_.Call[book](context.Background(), client, http_.Function("getBook"), "abc123", params)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if resp.Failed() {
		t.Fatalf("Failed() = true, status %d", resp.StatusCode)
	}

	if resp.Payload == nil || resp.Payload.Title != "Dune" {
		t.Fatalf("Payload = %+v, want Dune", resp.Payload)
	}

	req := rec.last(t)

	if req.method != http.MethodPost {
		t.Errorf("method = %s, want POST", req.method)
	}

	if req.path != "/parse/functions/getBook" {
		t.Errorf("path = %s", req.path)
	}

	if got := req.form.Get("bookId"); got != "b1" {
		t.Errorf("form bookId = %q", got)
	}

	if got := req.form.Get("page"); got != "0" {
		t.Errorf("form page = %q", got)
	}

	for header, want := range map[string]string{
		http_.ApplicationIDHeader: "app-id",
		http_.RESTAPIKeyHeader:    "rest-key",
		http_.SessionTokenHeader:  "abc123",
	} {
		if got := req.header.Get(header); got != want {
			t.Errorf("header %s = %q, want %q", header, got, want)
		}
	}

	if req.header.Get(http_.TraceIDHeader) == "" {
		t.Error("missing trace id header")
	}
}

func TestCallResourceGetUsesQuery(t *testing.T) {
	t.Parallel()

	client, rec := newTestClient(t, http.StatusOK, `{"objectId":"b2","title":"Emma"}`)

	params := url.Values{}
	params.Set("where", `{"title":"Emma"}`)

	ctx := context_.WithTraceID(context.Background(), "trace-1")

	resp, err := http_.Call[book](ctx, client, http_.Resource(http.MethodGet, "classes/Book"), "", params)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if resp.Payload == nil || resp.Payload.ID != "b2" {
		t.Fatalf("Payload = %+v", resp.Payload)
	}

	req := rec.last(t)

	if got := req.query.Get("where"); got != `{"title":"Emma"}` {
		t.Errorf("query where = %q", got)
	}

	if got := req.header.Get(http_.SessionTokenHeader); got != "" {
		t.Errorf("session header = %q, want none for blank credential", got)
	}

	if got := req.header.Get(http_.TraceIDHeader); got != "trace-1" {
		t.Errorf("trace header = %q, want trace-1", got)
	}
}

func TestCallReplies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		endpoint    http_.Endpoint
		wantErr     error
		wantStatus  int
		wantFailed  bool
		wantPayload bool
	}{
		{
			name:       "error body is returned on non-2xx",
			status:     http.StatusBadRequest,
			body:       `{"code":141,"error":"processing"}`,
			endpoint:   http_.Function("getBook"),
			wantStatus: http.StatusBadRequest,
			wantFailed: true,
		},
		{
			name:       "status 209 is a failure",
			status:     http_.StatusInvalidSession,
			body:       `{"code":209,"error":"invalid session token"}`,
			endpoint:   http_.Function("getBook"),
			wantStatus: http_.StatusInvalidSession,
			wantFailed: true,
		},
		{
			name:     "status error when requested",
			status:   http.StatusUnauthorized,
			body:     `{"error":"unauthorized"}`,
			endpoint: http_.Endpoint{Method: http.MethodGet, Path: "users/me", StatusErrors: true},
			wantErr:  &http_.StatusError{},
		},
		{
			name:       "null result has no payload",
			status:     http.StatusOK,
			body:       `{"result":null}`,
			endpoint:   http_.Function("logout"),
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty body has no payload",
			status:     http.StatusOK,
			body:       ``,
			endpoint:   http_.Resource(http.MethodPost, "logout"),
			wantStatus: http.StatusOK,
		},
		{
			name:     "malformed payload fails decoding",
			status:   http.StatusOK,
			body:     `{"result":"not an object"}`,
			endpoint: http_.Function("getBook"),
			wantErr:  http_.ErrDecodePayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, _ := newTestClient(t, tt.status, tt.body)

			resp, err := http_.Call[book](context.Background(), client, tt.endpoint, "abc", nil)

			if tt.wantErr != nil {
				var statusErr *http_.StatusError

				switch {
				case errors.As(tt.wantErr, &statusErr):
					if !errors.As(err, &statusErr) || statusErr.StatusCode != tt.status {
						t.Fatalf("error = %v, want status error %d", err, tt.status)
					}
				case !errors.Is(err, tt.wantErr):
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Call() error = %v", err)
			}

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			if resp.Failed() != tt.wantFailed {
				t.Errorf("Failed() = %v, want %v", resp.Failed(), tt.wantFailed)
			}

			if (resp.Payload != nil) != tt.wantPayload {
				t.Errorf("Payload = %+v, want present %v", resp.Payload, tt.wantPayload)
			}

			if tt.wantFailed && string(resp.ErrorBody) != tt.body {
				t.Errorf("ErrorBody = %s, want %s", resp.ErrorBody, tt.body)
			}
		})
	}
}

func TestCallNoneAcceptsAnyResult(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.StatusOK, `{"result":"ok"}`)

	resp, err := http_.Call[domain.None](context.Background(), client, http_.Function("removeBook"), "abc", url.Values{})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if resp.Payload == nil {
		t.Error("Payload = nil, want non-nil None")
	}
}

func TestCallTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := http_.NewClient(http_.ClientConfig{BaseURL: srv.URL}, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := http_.Call[book](context.Background(), client, http_.Function("getBook"), "", nil); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestNewClientInvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, baseURL := range []string{"", "not a url", "://missing-scheme"} {
		if _, err := http_.NewClient(http_.ClientConfig{BaseURL: baseURL}, nil); !errors.Is(err, http_.ErrInvalidBaseURL) {
			t.Errorf("NewClient(%q) error = %v, want ErrInvalidBaseURL", baseURL, err)
		}
	}
}
