package commentsvc

import (
	"net/url"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
)

//nolint:gochecknoglobals
var (
	addCommentEndpoint    = http_.Function("addComment")
	pageCommentsEndpoint  = http_.Function("getCommentsFromPage")
	editCommentEndpoint   = http_.Function("editComment")
	removeCommentEndpoint = http_.Function("removeComment")
	increaseVoteEndpoint  = http_.Function("increaseCommentVote")
	decreaseVoteEndpoint  = http_.Function("decreaseCommentVote")
	reportCommentEndpoint = http_.Function("reportComment")
)

func positionParams(bookID string, page *int, percentage *float64) url.Values {
	params := url.Values{"bookId": {bookID}}
	http_.SetInt(params, "page", page)
	http_.SetFloat(params, "percentage", percentage)

	return params
}

func positionChecks(bookID string, page *int, percentage *float64) []remote.Check[Error] {
	return append(
		[]remote.Check[Error]{remote.NotBlank(ErrInvalidBookID, bookID)},
		remote.Position(
			ErrInvalidDoubleValue, ErrInvalidPageNumber, ErrInvalidPageNumber, ErrInvalidPercentageNumber,
			page, percentage,
		)...,
	)
}

func addCommentCall(
	client *http_.Client,
	bookID, text string,
	page *int,
	percentage *float64,
	hasSpoilers bool,
) remote.Call[domain.Comment, Error] {
	params := positionParams(bookID, page, percentage)
	params.Set("text", text)
	http_.SetBool(params, "hasSpoilers", hasSpoilers)

	checks := positionChecks(bookID, page, percentage)
	checks = append(checks, remote.NotBlank(ErrEmptyText, text))

	return remote.NewCall[domain.Comment](client, "add_comment", addCommentEndpoint, params, checks...)
}

func pageCommentsCall(
	client *http_.Client,
	bookID string,
	page *int,
	percentage *float64,
) remote.Call[[]domain.Comment, Error] {
	return remote.NewCall[[]domain.Comment](client, "get_page_comments", pageCommentsEndpoint,
		positionParams(bookID, page, percentage),
		positionChecks(bookID, page, percentage)...,
	)
}

func editCommentCall(client *http_.Client, commentID, text string) remote.Call[domain.Comment, Error] {
	return remote.NewCall[domain.Comment](client, "edit_comment", editCommentEndpoint,
		url.Values{
			"commentId": {commentID},
			"text":      {text},
		},
		remote.NotBlank(ErrInvalidCommentID, commentID),
		remote.NotBlank(ErrEmptyText, text),
	)
}

// commentCall builds the calls that only carry a comment id.
func commentCall(client *http_.Client, operation string, ep http_.Endpoint, commentID string) remote.Call[domain.None, Error] {
	return remote.NewCall[domain.None](client, operation, ep,
		url.Values{"commentId": {commentID}},
		remote.NotBlank(ErrInvalidCommentID, commentID),
	)
}
