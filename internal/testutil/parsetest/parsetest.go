// Package parsetest provides a scripted in-process Parse backend for repository tests.
package parsetest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	"github.com/AyoPrez/sobuu-sub000/internal/infra/logging"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
	"github.com/AyoPrez/sobuu-sub000/internal/repo/credential"
	"github.com/AyoPrez/sobuu-sub000/internal/session"
)

const (
	ApplicationID = "test-app"
	RESTAPIKey    = "test-key"
)

// Request is a request received by the Server.
type Request struct {
	Method string
	Form   url.Values
	Header http.Header
}

type reply struct {
	status int
	body   string
}

// Server is a fake backend answering scripted replies per path.
// Paths are relative to the API root, e.g. "functions/getSessionToken".
// Unscripted paths answer 404 with an error body without code.
type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	replies  map[string]reply
	requests map[string][]Request
}

// New starts a Server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		replies:  make(map[string]reply),
		requests: make(map[string][]Request),
	}

	s.srv = httptest.NewServer(http.StripPrefix("/parse/", http.HandlerFunc(s.serve)))
	t.Cleanup(s.srv.Close)

	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	form, _ := url.ParseQuery(string(raw))

	for k, v := range r.URL.Query() {
		form[k] = append(form[k], v...)
	}

	path := strings.TrimPrefix(r.URL.Path, "/")

	s.mu.Lock()
	s.requests[path] = append(s.requests[path], Request{
		Method: r.Method,
		Form:   form,
		Header: r.Header.Clone(),
	})
	rep, ok := s.replies[path]
	s.mu.Unlock()

	if !ok {
		rep = reply{status: http.StatusNotFound, body: `{"error":"unscripted path"}`}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

// Reply scripts the raw reply for path.
func (s *Server) Reply(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replies[path] = reply{status: status, body: body}
}

// ReplyJSON scripts a reply with v encoded as JSON.
func (s *Server) ReplyJSON(t testing.TB, path string, status int, v any) {
	t.Helper()

	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}

	s.Reply(path, status, string(body))
}

// ReplyResult scripts a cloud-function success wrapping v as {"result": v}.
func (s *Server) ReplyResult(t testing.TB, path string, v any) {
	t.Helper()

	s.ReplyJSON(t, path, http.StatusOK, map[string]any{"result": v})
}

// ReplyCode scripts a backend error reply carrying code.
func (s *Server) ReplyCode(path string, status, code int) {
	body, _ := json.Marshal(map[string]any{"code": code, "error": "scripted error"})

	s.Reply(path, status, string(body))
}

// Calls returns the number of requests received on path.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests[path])
}

// TotalCalls returns the number of requests received on any path.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, reqs := range s.requests {
		total += len(reqs)
	}

	return total
}

// LastRequest returns the most recent request on path.
func (s *Server) LastRequest(t testing.TB, path string) Request {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	reqs := s.requests[path]
	if len(reqs) == 0 {
		t.Fatalf("no request on %s", path)
	}

	return reqs[len(reqs)-1]
}

// Config returns a client configuration pointing at the Server.
func (s *Server) Config() http_.ClientConfig {
	return http_.ClientConfig{
		BaseURL:       s.srv.URL + "/parse/",
		ApplicationID: ApplicationID,
		RESTAPIKey:    RESTAPIKey,
	}
}

// Client returns a Parse client talking to the Server.
func (s *Server) Client(t testing.TB) *http_.Client {
	t.Helper()

	client, err := http_.NewClient(s.Config(), s.srv.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	return client
}

// NewSession returns a session over a memory store holding cred. A blank cred starts without session.
func NewSession(t testing.TB, cred domain.Credential) (*session.Session, credential.Store) {
	t.Helper()

	ctx := context.Background()
	store := credential.NewMemoryCredentialStore()

	if !cred.IsBlank() {
		if err := store.Set(ctx, cred); err != nil {
			t.Fatalf("set credential: %v", err)
		}
	}

	return session.New(ctx, store), store
}

// StoredCredential returns the credential in store, failing the test on read errors.
func StoredCredential(t testing.TB, store credential.Store) (domain.Credential, bool) {
	t.Helper()

	cred, ok, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("get credential: %v", err)
	}

	return cred, ok
}

// Options returns executor options suitable for tests.
func Options() []remote.Option {
	return []remote.Option{remote.WithLogger(logging.NewNopLogger())}
}
