// Package commentsvc implements the comments feature: notes attached to a page or
// percentage of a book, with votes and reports.
package commentsvc

import (
	"context"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
	"github.com/AyoPrez/sobuu-sub000/internal/session"
)

// Repository runs comment operations with the current session credential.
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

// AddComment attaches text to a position in bookID given as exactly one of page or percentage.
func (r *Repository) AddComment(
	ctx context.Context,
	bookID, text string,
	page *int,
	percentage *float64,
	hasSpoilers bool,
) remote.Outcome[domain.Comment, Error] {
	call := addCommentCall(r.client, bookID, text, page, percentage, hasSpoilers)

	return remote.ExecuteWithSession(ctx, r.sess, r.ex, call)
}

// GetCommentsInPage lists the comments at a position in bookID.
func (r *Repository) GetCommentsInPage(
	ctx context.Context,
	bookID string,
	page *int,
	percentage *float64,
) remote.Outcome[[]domain.Comment, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, pageCommentsCall(r.client, bookID, page, percentage))
}

// EditComment replaces the text of commentID.
func (r *Repository) EditComment(ctx context.Context, commentID, text string) remote.Outcome[domain.Comment, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, editCommentCall(r.client, commentID, text))
}

// RemoveComment deletes commentID.
func (r *Repository) RemoveComment(ctx context.Context, commentID string) remote.Outcome[domain.None, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex,
		commentCall(r.client, "remove_comment", removeCommentEndpoint, commentID))
}

// IncreaseVote adds one vote to commentID.
func (r *Repository) IncreaseVote(ctx context.Context, commentID string) remote.Outcome[domain.None, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex,
		commentCall(r.client, "increase_vote", increaseVoteEndpoint, commentID))
}

// DecreaseVote removes one vote from commentID.
func (r *Repository) DecreaseVote(ctx context.Context, commentID string) remote.Outcome[domain.None, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex,
		commentCall(r.client, "decrease_vote", decreaseVoteEndpoint, commentID))
}

// ReportComment flags commentID for moderation.
func (r *Repository) ReportComment(ctx context.Context, commentID string) remote.Outcome[domain.None, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex,
		commentCall(r.client, "report_comment", reportCommentEndpoint, commentID))
}
