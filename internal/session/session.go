// Package session owns the device's single session credential.
//
// A Session is the only component that mutates the credential store. Repositories read the
// credential through it before every remote call and report validity changes back to it:
//
//	NoSession --Establish--> SessionPresentUnverified --Verify--> SessionVerified
//	    ^                               |                               |
//	    +------------- Invalidate ------+-------------------------------+
//
// Store failures never reach callers: a failed read is treated as "no credential" and a failed
// write is logged and otherwise ignored.
package session

import (
	"context"
	"sync"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	"github.com/AyoPrez/sobuu-sub000/internal/infra/logging"
	"github.com/AyoPrez/sobuu-sub000/internal/repo/credential"
)

// State is the validity of the local session as far as the client knows.
type State int

const (
	// NoSession means no credential is stored.
	NoSession State = iota
	// SessionPresentUnverified means a credential is stored but the backend has not confirmed it.
	SessionPresentUnverified
	// SessionVerified means the backend accepted the credential on authenticate.
	SessionVerified
)

func (s State) String() string {
	switch s {
	case NoSession:
		return "no_session"
	case SessionPresentUnverified:
		return "session_present_unverified"
	case SessionVerified:
		return "session_verified"
	default:
		return "unknown"
	}
}

// Observer is notified after every state transition.
type Observer func(ctx context.Context, from, to State)

// Session is the explicit session context shared by all repositories.
// It is safe for concurrent use.
type Session struct {
	store     credential.Store
	log       logging.Logger
	observers []Observer

	m     sync.Mutex
	state State
}

// New creates a Session on top of store. The initial state is SessionPresentUnverified
// when the store already holds a credential, NoSession otherwise.
func New(ctx context.Context, store credential.Store, observers ...Observer) *Session {
	s := &Session{
		store:     store,
		log:       logging.GetLogger("session"),
		observers: observers,
	}

	if _, ok := s.Credential(ctx); ok {
		s.state = SessionPresentUnverified
	}

	return s
}

// Credential returns the stored credential and true, or false if there is none
// or it cannot be read.
func (s *Session) Credential(ctx context.Context) (domain.Credential, bool) {
	cred, ok, err := s.store.Get(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "credential read failed", "error", err)

		return "", false
	}

	if !ok || cred.IsBlank() {
		return "", false
	}

	return cred, true
}

// State returns the current validity state.
func (s *Session) State() State {
	s.m.Lock()
	defer s.m.Unlock()

	return s.state
}

// Establish stores a freshly issued credential. A blank credential invalidates the session.
func (s *Session) Establish(ctx context.Context, cred domain.Credential) {
	if cred.IsBlank() {
		s.Invalidate(ctx)

		return
	}

	s.m.Lock()

	if err := s.store.Set(ctx, cred); err != nil {
		s.log.ErrorContext(ctx, "credential write failed", "error", err)
	}

	from := s.transition(SessionPresentUnverified)

	s.m.Unlock()

	s.notify(ctx, from, SessionPresentUnverified)
}

// Verify records that the backend accepted the stored credential.
// It is a no-op without a stored credential.
func (s *Session) Verify(ctx context.Context) {
	if _, ok := s.Credential(ctx); !ok {
		return
	}

	s.m.Lock()
	from := s.transition(SessionVerified)
	s.m.Unlock()

	s.notify(ctx, from, SessionVerified)
}

// Invalidate removes the stored credential.
func (s *Session) Invalidate(ctx context.Context) {
	s.m.Lock()

	if err := s.store.Clear(ctx); err != nil {
		s.log.ErrorContext(ctx, "credential clear failed", "error", err)
	}

	from := s.transition(NoSession)

	s.m.Unlock()

	s.notify(ctx, from, NoSession)
}

// InvalidateIf removes the stored credential only while it still equals cred and
// reports whether it did. A credential established after cred was read is kept.
func (s *Session) InvalidateIf(ctx context.Context, cred domain.Credential) bool {
	s.m.Lock()

	stored, ok, err := s.store.Get(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "credential read failed", "error", err)
	}

	if err != nil || !ok || stored != cred {
		s.m.Unlock()

		return false
	}

	if err := s.store.Clear(ctx); err != nil {
		s.log.ErrorContext(ctx, "credential clear failed", "error", err)
	}

	from := s.transition(NoSession)

	s.m.Unlock()

	s.notify(ctx, from, NoSession)

	return true
}

// transition must be called with s.m held.
func (s *Session) transition(to State) State {
	from := s.state
	s.state = to

	return from
}

func (s *Session) notify(ctx context.Context, from, to State) {
	if from == to {
		return
	}

	s.log.DebugContext(ctx, "session state changed", logging.Group("session",
		"from", from.String(),
		"to", to.String(),
	))

	for _, observer := range s.observers {
		observer(ctx, from, to)
	}
}
