// Package authsvc implements the authentication feature: login, registration,
// session checks, logout and password reset.
package authsvc

import (
	"context"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	"github.com/AyoPrez/sobuu-sub000/internal/infra/logging"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
	"github.com/AyoPrez/sobuu-sub000/internal/session"
)

// Repository owns the session credential for the authentication feature.
// It stores the credential on login and clears it when the backend no longer accepts it.
type Repository struct {
	sess   *session.Session
	client *http_.Client
	ex     *remote.Executor[Error]
	log    logging.Logger
}

// NewRepository creates a Repository issuing calls through client.
func NewRepository(sess *session.Session, client *http_.Client, opts ...remote.Option) *Repository {
	return &Repository{
		sess:   sess,
		client: client,
		ex:     remote.NewExecutor(Taxonomy, opts...),
		log:    logging.GetLogger("svc.authsvc.repository"),
	}
}

// Login exchanges username and password for a session credential and stores it.
func (r *Repository) Login(ctx context.Context, username, password string) remote.Outcome[domain.Session, Error] {
	log := r.log.With(logging.Group("user", "username", username))

	out := remote.Execute(ctx, r.ex, loginCall(r.client, username, password))
	if !out.IsSuccess() {
		return out
	}

	sess := out.Data()
	if sess == nil || sess.Token.IsBlank() {
		log.WarnContext(ctx, "login reply without session token")

		return remote.Failure[domain.Session](ErrUnknown)
	}

	r.sess.Establish(ctx, sess.Token)
	log.DebugContext(ctx, "login successful")

	return out
}

// Register creates a new account. It does not log the user in.
func (r *Repository) Register(
	ctx context.Context,
	username, email, password, firstname, lastname string,
) remote.Outcome[domain.User, Error] {
	return remote.Execute(ctx, r.ex, registerCall(r.client, username, email, password, firstname, lastname))
}

// Authenticate checks the stored credential against the backend.
// Any failure, including a missing credential, clears the credential and reports ErrUnauthorized.
func (r *Repository) Authenticate(ctx context.Context) remote.Outcome[domain.User, Error] {
	credential, ok := r.sess.Credential(ctx)
	if !ok {
		r.sess.Invalidate(ctx)

		return remote.Failure[domain.User](ErrUnauthorized)
	}

	call := authenticateCall(r.client)
	call.Credential = credential

	out := remote.Execute(ctx, r.ex, call)
	if kind, failed := out.Err(); failed {
		r.log.InfoContext(ctx, "authentication failed", "kind", kind)
		r.sess.Invalidate(ctx)

		return remote.Failure[domain.User](ErrUnauthorized)
	}

	r.sess.Verify(ctx)

	return out
}

// Logout ends the session on the backend. The local credential is cleared whatever the
// backend answers; without a credential it fails with ErrUnauthorized and sends nothing.
func (r *Repository) Logout(ctx context.Context) remote.Outcome[domain.None, Error] {
	credential, ok := r.sess.Credential(ctx)
	if !ok {
		return remote.Failure[domain.None](ErrUnauthorized)
	}

	defer r.sess.Invalidate(ctx)

	call := logoutCall(r.client)
	call.Credential = credential

	return remote.Execute(ctx, r.ex, call)
}

// ResetPassword asks the backend to mail a password reset link to email.
func (r *Repository) ResetPassword(ctx context.Context, email string) remote.Outcome[domain.None, Error] {
	return remote.Execute(ctx, r.ex, resetPasswordCall(r.client, email))
}
