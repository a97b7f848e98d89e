package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/AyoPrez/sobuu-sub000/internal/remote"
	"github.com/AyoPrez/sobuu-sub000/internal/repo/credential"
	"github.com/AyoPrez/sobuu-sub000/internal/testutil/parsetest"
)

func newTestApp(t *testing.T, metricsCfg MetricsConfig) (*app, *parsetest.Server, *bytes.Buffer) {
	t.Helper()

	srv := parsetest.New(t)
	out := &bytes.Buffer{}

	if metricsCfg.Namespace == "" {
		metricsCfg.Namespace = "test"
	}

	//nolint:exhaustruct
	a, err := newApp(context.Background(), Config{
		Credential: credential.Config{Backend: "memory"},
		Parse:      srv.Config(),
		Metrics:    metricsCfg,
	}, out)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}

	return a, srv, out
}

func execute(a *app, args ...string) error {
	root := newRootCommand(a)
	root.SetArgs(args)

	return root.ExecuteContext(context.Background())
}

func TestLoginThenSearch(t *testing.T) {
	t.Parallel()

	a, srv, out := newTestApp(t, MetricsConfig{})
	srv.ReplyResult(t, "functions/getSessionToken", map[string]string{
		"sessionToken": "abc123",
		"objectId":     "u1",
		"username":     "alice",
	})
	srv.ReplyResult(t, "functions/search", []map[string]any{{"id": "b1", "title": "Dune"}})

	if err := execute(a, "login", "alice", "secret"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	if strings.Contains(out.String(), "abc123") {
		t.Errorf("login output leaks the session token: %s", out.String())
	}

	out.Reset()

	if err := execute(a, "search", "dune"); err != nil {
		t.Fatalf("search error = %v", err)
	}

	var books []map[string]any
	if err := json.Unmarshal(out.Bytes(), &books); err != nil {
		t.Fatalf("decode output: %v (%s)", err, out.String())
	}

	if len(books) != 1 || books[0]["title"] != "Dune" {
		t.Errorf("books = %v", books)
	}

	if got := srv.LastRequest(t, "functions/search").Header.Get("X-Parse-Session-Token"); got != "abc123" {
		t.Errorf("session header = %q, want abc123", got)
	}
}

func TestFailuresReturnErrorTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "whoami without session", args: []string{"whoami"}, want: "unauthorized"},
		{name: "logout without session", args: []string{"logout"}, want: "unauthorized"},
		{name: "shelves without session", args: []string{"shelves"}, want: "invalid_session_token"},
		{name: "register blank", args: []string{"register", "", "", "", "", ""}, want: "empty_credentials"},
		{name: "reset bad email", args: []string{"reset-password", "alice"}, want: "wrong_email_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, srv, _ := newTestApp(t, MetricsConfig{})

			err := execute(a, tt.args...)
			if err == nil || err.Error() != tt.want {
				t.Errorf("error = %v, want %s", err, tt.want)
			}

			if got := srv.TotalCalls(); got != 0 {
				t.Errorf("calls = %d, want 0", got)
			}
		})
	}
}

func TestProgressFlags(t *testing.T) {
	t.Parallel()

	a, srv, _ := newTestApp(t, MetricsConfig{})
	srv.ReplyResult(t, "functions/getSessionToken", "abc123")
	srv.ReplyResult(t, "functions/updateBookProgress", map[string]any{"id": "p1", "page": 10})

	if err := execute(a, "login", "alice", "secret"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	err := execute(a, "progress", "b1", "--page", "10", "--percentage", "50")
	if err == nil || err.Error() != "invalid_double_value" {
		t.Fatalf("progress error = %v, want invalid_double_value", err)
	}

	if got := srv.Calls("functions/updateBookProgress"); got != 0 {
		t.Fatalf("calls = %d, want 0", got)
	}

	if err := execute(a, "progress", "b1", "--page", "10", "--finished"); err != nil {
		t.Fatalf("progress error = %v", err)
	}

	req := srv.LastRequest(t, "functions/updateBookProgress")
	if req.Form.Get("page") != "10" || req.Form.Get("finished") != "true" || req.Form.Has("percentage") {
		t.Errorf("form = %v", req.Form)
	}
}

func TestOverview(t *testing.T) {
	t.Parallel()

	a, srv, out := newTestApp(t, MetricsConfig{})
	srv.ReplyResult(t, "functions/getSessionToken", "abc123")
	srv.ReplyResult(t, "functions/getUserProfile", map[string]any{"id": "p1", "username": "alice"})
	srv.ReplyResult(t, "functions/getUserCurrentReadingBooks", []map[string]any{})
	srv.ReplyResult(t, "functions/getUserShelves", []map[string]any{{"id": "s1"}})

	if err := execute(a, "login", "alice", "secret"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	out.Reset()

	if err := execute(a, "overview"); err != nil {
		t.Fatalf("overview error = %v", err)
	}

	var got struct {
		Profile struct {
			Username string `json:"username"`
		} `json:"profile"`
		Shelves []map[string]any `json:"shelves"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}

	if got.Profile.Username != "alice" || len(got.Shelves) != 1 {
		t.Errorf("overview = %+v", got)
	}

	srv.ReplyCode("functions/getUserShelves", http.StatusBadRequest, remote.CodeInvalidSession)

	if err := execute(a, "overview"); err == nil {
		t.Error("overview error = nil, want failure")
	}

	if _, ok := a.session.Credential(context.Background()); ok {
		t.Error("credential kept after invalid session")
	}
}

func TestClosePushesMetrics(t *testing.T) {
	t.Parallel()

	var pushes atomic.Int32

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/metrics/job/"+appName) {
			pushes.Add(1)
		}

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(gateway.Close)

	a, srv, _ := newTestApp(t, MetricsConfig{PushURL: gateway.URL})
	srv.ReplyResult(t, "functions/getSessionToken", "abc123")

	if err := execute(a, "login", "alice", "secret"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	if err := a.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if got := pushes.Load(); got != 1 {
		t.Errorf("pushes = %d, want 1", got)
	}
}
