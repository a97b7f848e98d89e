package booksvc

import (
	"net/url"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
)

const (
	MinRate = 0
	MaxRate = 10
)

//nolint:gochecknoglobals
var (
	searchEndpoint           = http_.Function("search")
	getBookEndpoint          = http_.Function("getBookById")
	currentReadingEndpoint   = http_.Function("getUserCurrentReadingBooks")
	finishedEndpoint         = http_.Function("getUserFinishedBooks")
	giveUpEndpoint           = http_.Function("getUserGiveUpBooks")
	addBookEndpoint          = http_.Function("addBookToUser")
	updateProgressEndpoint   = http_.Function("updateBookProgress")
	rateBookEndpoint         = http_.Function("rateBook")
	updateRatingEndpoint     = http_.Function("updateRating")
	removeRatingEndpoint     = http_.Function("removeRating")
	userRatingInBookEndpoint = http_.Function("getUserRatingInBook")
	bookRatingsEndpoint      = http_.Function("getBookRatings")
)

func bookParams(bookID string) url.Values {
	return url.Values{"bookId": {bookID}}
}

func searchCall(client *http_.Client, term string) remote.Call[[]domain.Book, Error] {
	return remote.NewCall[[]domain.Book](client, "search_book", searchEndpoint,
		url.Values{"term": {term}},
		remote.NotBlank(ErrEmptySearchTerm, term),
	)
}

func getBookCall(client *http_.Client, bookID string) remote.Call[domain.BookWithProgress, Error] {
	return remote.NewCall[domain.BookWithProgress](client, "get_book", getBookEndpoint,
		bookParams(bookID),
		remote.NotBlank(ErrInvalidBookID, bookID),
	)
}

func listCall(client *http_.Client, operation string, ep http_.Endpoint) remote.Call[[]domain.BookWithProgress, Error] {
	return remote.NewCall[[]domain.BookWithProgress, Error](client, operation, ep, url.Values{})
}

func addBookCall(client *http_.Client, bookID string) remote.Call[domain.BookProgress, Error] {
	return remote.NewCall[domain.BookProgress](client, "add_book", addBookEndpoint,
		bookParams(bookID),
		remote.NotBlank(ErrInvalidBookID, bookID),
	)
}

func updateProgressCall(
	client *http_.Client,
	bookID string,
	percentage *float64,
	page *int,
	finished, giveUp bool,
) remote.Call[domain.BookProgress, Error] {
	params := bookParams(bookID)
	http_.SetInt(params, "page", page)
	http_.SetFloat(params, "percentage", percentage)
	http_.SetBool(params, "finished", finished)
	http_.SetBool(params, "giveUp", giveUp)

	checks := []remote.Check[Error]{remote.NotBlank(ErrInvalidBookID, bookID)}
	checks = append(checks, remote.Position(
		ErrInvalidDoubleValue, ErrInvalidPageNumber, ErrInvalidPageNumber, ErrInvalidPercentageNumber,
		page, percentage,
	)...)
	checks = append(checks, remote.NotBoth(ErrInvalidFinishedAndGiveUpBookValues, finished, giveUp))

	return remote.NewCall[domain.BookProgress](client, "update_progress", updateProgressEndpoint, params, checks...)
}

func rateParams(rate float64, text string) url.Values {
	params := url.Values{"review": {text}}
	http_.SetFloat(params, "rating", &rate)

	return params
}

func rateBookCall(client *http_.Client, bookID string, rate float64, text string) remote.Call[domain.Rating, Error] {
	params := rateParams(rate, text)
	params.Set("bookId", bookID)

	return remote.NewCall[domain.Rating](client, "rate_book", rateBookEndpoint, params,
		remote.NotBlank(ErrInvalidBookID, bookID),
		remote.Between(ErrInvalidRateNumber, &rate, MinRate, MaxRate),
	)
}

func updateRatingCall(client *http_.Client, ratingID string, rate float64, text string) remote.Call[domain.Rating, Error] {
	params := rateParams(rate, text)
	params.Set("ratingId", ratingID)

	return remote.NewCall[domain.Rating](client, "update_rating", updateRatingEndpoint, params,
		remote.NotBlank(ErrInvalidRateID, ratingID),
		remote.Between(ErrInvalidRateNumber, &rate, MinRate, MaxRate),
	)
}

func removeRatingCall(client *http_.Client, ratingID string) remote.Call[domain.None, Error] {
	return remote.NewCall[domain.None](client, "remove_rating", removeRatingEndpoint,
		url.Values{"ratingId": {ratingID}},
		remote.NotBlank(ErrInvalidRateID, ratingID),
	)
}

func userRatingInBookCall(client *http_.Client, bookID string) remote.Call[domain.Rating, Error] {
	return remote.NewCall[domain.Rating](client, "get_user_rating", userRatingInBookEndpoint,
		bookParams(bookID),
		remote.NotBlank(ErrInvalidBookID, bookID),
	)
}

func bookRatingsCall(client *http_.Client, bookID string) remote.Call[[]domain.Rating, Error] {
	return remote.NewCall[[]domain.Rating](client, "get_book_ratings", bookRatingsEndpoint,
		bookParams(bookID),
		remote.NotBlank(ErrInvalidBookID, bookID),
	)
}
