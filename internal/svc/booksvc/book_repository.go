// Package booksvc implements the book feature: catalogue search, reading progress and ratings.
package booksvc

import (
	"context"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
	"github.com/AyoPrez/sobuu-sub000/internal/session"
)

// Repository runs book operations with the current session credential.
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

// SearchBook looks up books matching term.
func (r *Repository) SearchBook(ctx context.Context, term string) remote.Outcome[[]domain.Book, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, searchCall(r.client, term))
}

// GetBookByID returns the book and the user's progress in it.
func (r *Repository) GetBookByID(ctx context.Context, bookID string) remote.Outcome[domain.BookWithProgress, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, getBookCall(r.client, bookID))
}

// GetCurrentReadingBooks lists the books the user is reading, with progress.
func (r *Repository) GetCurrentReadingBooks(ctx context.Context) remote.Outcome[[]domain.BookWithProgress, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, listCall(r.client, "get_current_reading", currentReadingEndpoint))
}

// GetFinishedBooks lists the books the user has finished.
func (r *Repository) GetFinishedBooks(ctx context.Context) remote.Outcome[[]domain.BookWithProgress, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, listCall(r.client, "get_finished", finishedEndpoint))
}

// GetGiveUpBooks lists the books the user gave up on.
func (r *Repository) GetGiveUpBooks(ctx context.Context) remote.Outcome[[]domain.BookWithProgress, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, listCall(r.client, "get_give_up", giveUpEndpoint))
}

// AddBookToUser starts tracking bookID for the user.
func (r *Repository) AddBookToUser(ctx context.Context, bookID string) remote.Outcome[domain.BookProgress, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, addBookCall(r.client, bookID))
}

// UpdateBookProgress moves the reading position. Exactly one of percentage and page must be set;
// finished and giveUp are mutually exclusive.
func (r *Repository) UpdateBookProgress(
	ctx context.Context,
	bookID string,
	percentage *float64,
	page *int,
	finished, giveUp bool,
) remote.Outcome[domain.BookProgress, Error] {
	call := updateProgressCall(r.client, bookID, percentage, page, finished, giveUp)

	return remote.ExecuteWithSession(ctx, r.sess, r.ex, call)
}

// RateBook scores bookID between MinRate and MaxRate with an optional review text.
func (r *Repository) RateBook(ctx context.Context, bookID string, rate float64, text string) remote.Outcome[domain.Rating, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, rateBookCall(r.client, bookID, rate, text))
}

// UpdateRating replaces the score and review text of ratingID.
func (r *Repository) UpdateRating(
	ctx context.Context,
	ratingID string,
	rate float64,
	text string,
) remote.Outcome[domain.Rating, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, updateRatingCall(r.client, ratingID, rate, text))
}

// RemoveRating deletes the user's rating ratingID.
func (r *Repository) RemoveRating(ctx context.Context, ratingID string) remote.Outcome[domain.None, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, removeRatingCall(r.client, ratingID))
}

// GetUserRatingInBook returns the user's own rating of bookID. The payload is nil when
// the user has not rated it.
func (r *Repository) GetUserRatingInBook(ctx context.Context, bookID string) remote.Outcome[domain.Rating, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, userRatingInBookCall(r.client, bookID))
}

// GetBookRatings lists all ratings of bookID.
func (r *Repository) GetBookRatings(ctx context.Context, bookID string) remote.Outcome[[]domain.Rating, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, bookRatingsCall(r.client, bookID))
}
