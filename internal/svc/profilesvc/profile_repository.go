// Package profilesvc implements the profile feature.
package profilesvc

import (
	"context"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
	"github.com/AyoPrez/sobuu-sub000/internal/session"
)

// Repository runs profile operations with the current session credential.
type Repository struct {
	sess   *session.Session
	client *http_.Client
	ex     *remote.Executor[Error]
}

// NewRepository creates a Repository issuing calls through client.
func NewRepository(sess *session.Session, client *http_.Client, opts ...remote.Option) *Repository {
	return &Repository{
		sess:   sess,
		client: client,
		ex:     remote.NewExecutor(Taxonomy, opts...),
	}
}

// GetUserProfile returns the profile of the logged in user.
func (r *Repository) GetUserProfile(ctx context.Context) remote.Outcome[domain.Profile, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, userProfileCall(r.client))
}

// GetFollowingProfiles lists the profiles the user follows.
func (r *Repository) GetFollowingProfiles(ctx context.Context) remote.Outcome[[]domain.Profile, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, followingCall(r.client))
}

// FollowProfile starts following profileID.
func (r *Repository) FollowProfile(ctx context.Context, profileID string) remote.Outcome[domain.None, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, followCall(r.client, "follow", followEndpoint, profileID))
}

// UnfollowProfile stops following profileID.
func (r *Repository) UnfollowProfile(ctx context.Context, profileID string) remote.Outcome[domain.None, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, followCall(r.client, "unfollow", unfollowEndpoint, profileID))
}
