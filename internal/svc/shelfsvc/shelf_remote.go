package shelfsvc

import (
	"net/url"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
)

//nolint:gochecknoglobals
var (
	userShelvesEndpoint   = http_.Function("getUserShelves")
	getShelfEndpoint      = http_.Function("getShelfById")
	createShelfEndpoint   = http_.Function("createShelf")
	updateShelfEndpoint   = http_.Function("updateShelf")
	removeShelfEndpoint   = http_.Function("removeShelf")
	addBookEndpoint       = http_.Function("addBookToShelf")
	removeBookEndpoint    = http_.Function("removeBookFromShelf")
	searchShelvesEndpoint = http_.Function("searchShelves")
)

func userShelvesCall(client *http_.Client) remote.Call[[]domain.Shelf, Error] {
	return remote.NewCall[[]domain.Shelf, Error](client, "get_user_shelves", userShelvesEndpoint, url.Values{})
}

func getShelfCall(client *http_.Client, shelfID string) remote.Call[domain.Shelf, Error] {
	return remote.NewCall[domain.Shelf](client, "get_shelf", getShelfEndpoint,
		url.Values{"shelfId": {shelfID}},
		remote.NotBlank(ErrInvalidShelfID, shelfID),
	)
}

func shelfParams(name, description string, public bool) url.Values {
	params := url.Values{
		"name":        {name},
		"description": {description},
	}
	http_.SetBool(params, "isPublic", public)

	return params
}

func createShelfCall(client *http_.Client, name, description string, public bool) remote.Call[domain.Shelf, Error] {
	return remote.NewCall[domain.Shelf](client, "create_shelf", createShelfEndpoint,
		shelfParams(name, description, public),
		remote.NotBlank(ErrEmptyName, name),
		remote.NotBlank(ErrEmptyDescription, description),
	)
}

func updateShelfCall(
	client *http_.Client,
	shelfID, name, description string,
	public bool,
) remote.Call[domain.Shelf, Error] {
	params := shelfParams(name, description, public)
	params.Set("shelfId", shelfID)

	return remote.NewCall[domain.Shelf](client, "update_shelf", updateShelfEndpoint, params,
		remote.NotBlank(ErrInvalidShelfID, shelfID),
		remote.NotBlank(ErrEmptyName, name),
		remote.NotBlank(ErrEmptyDescription, description),
	)
}

func removeShelfCall(client *http_.Client, shelfID string) remote.Call[domain.None, Error] {
	return remote.NewCall[domain.None](client, "remove_shelf", removeShelfEndpoint,
		url.Values{"shelfId": {shelfID}},
		remote.NotBlank(ErrInvalidShelfID, shelfID),
	)
}

func shelfBookCall(
	client *http_.Client,
	operation string,
	ep http_.Endpoint,
	shelfID, bookID string,
) remote.Call[domain.Shelf, Error] {
	return remote.NewCall[domain.Shelf](client, operation, ep,
		url.Values{
			"shelfId": {shelfID},
			"bookId":  {bookID},
		},
		remote.NotBlank(ErrInvalidShelfID, shelfID),
		remote.NotBlank(ErrInvalidBookID, bookID),
	)
}

func searchShelvesCall(client *http_.Client, term string) remote.Call[[]domain.Shelf, Error] {
	return remote.NewCall[[]domain.Shelf](client, "search_shelves", searchShelvesEndpoint,
		url.Values{"term": {term}},
		remote.NotBlank(ErrEmptySearchTerm, term),
	)
}
