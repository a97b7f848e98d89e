// Package shelfsvc implements the shelf feature: user-curated book lists.
package shelfsvc

import (
	"context"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
	"github.com/AyoPrez/sobuu-sub000/internal/session"
)

// Repository runs shelf operations with the current session credential.
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

// GetUserShelves lists the user's shelves.
func (r *Repository) GetUserShelves(ctx context.Context) remote.Outcome[[]domain.Shelf, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, userShelvesCall(r.client))
}

// GetShelfByID returns shelfID with its books.
func (r *Repository) GetShelfByID(ctx context.Context, shelfID string) remote.Outcome[domain.Shelf, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, getShelfCall(r.client, shelfID))
}

// CreateShelf creates an empty shelf. Both name and description are required.
func (r *Repository) CreateShelf(
	ctx context.Context,
	name, description string,
	public bool,
) remote.Outcome[domain.Shelf, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, createShelfCall(r.client, name, description, public))
}

// UpdateShelf replaces the name, description and visibility of shelfID.
func (r *Repository) UpdateShelf(
	ctx context.Context,
	shelfID, name, description string,
	public bool,
) remote.Outcome[domain.Shelf, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, updateShelfCall(r.client, shelfID, name, description, public))
}

// RemoveShelf deletes shelfID.
func (r *Repository) RemoveShelf(ctx context.Context, shelfID string) remote.Outcome[domain.None, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, removeShelfCall(r.client, shelfID))
}

// AddBookToShelf puts bookID on shelfID and returns the updated shelf.
func (r *Repository) AddBookToShelf(ctx context.Context, shelfID, bookID string) remote.Outcome[domain.Shelf, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex,
		shelfBookCall(r.client, "add_book_to_shelf", addBookEndpoint, shelfID, bookID))
}

// RemoveBookFromShelf takes bookID off shelfID.
func (r *Repository) RemoveBookFromShelf(
	ctx context.Context,
	shelfID, bookID string,
) remote.Outcome[domain.Shelf, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex,
		shelfBookCall(r.client, "remove_book_from_shelf", removeBookEndpoint, shelfID, bookID))
}

// SearchShelves looks up public shelves matching term.
func (r *Repository) SearchShelves(ctx context.Context, term string) remote.Outcome[[]domain.Shelf, Error] {
	return remote.ExecuteWithSession(ctx, r.sess, r.ex, searchShelvesCall(r.client, term))
}
