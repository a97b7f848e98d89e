package commentsvc

import (
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
)

// Error is the failure taxonomy of the comments feature.
type Error int

const (
	ErrUnknown Error = iota
	ErrInvalidSessionToken
	ErrUnauthorized
	ErrProcessingQuery
	ErrTimeout
	ErrInvalidBookID
	ErrInvalidCommentID
	ErrEmptyText
	ErrInvalidPageNumber
	ErrInvalidPercentageNumber
	ErrInvalidDoubleValue
)

//nolint:gochecknoglobals
var errorTags = map[Error]string{
	ErrUnknown:                 "unknown",
	ErrInvalidSessionToken:     "invalid_session_token",
	ErrUnauthorized:            "unauthorized",
	ErrProcessingQuery:         "processing_query",
	ErrTimeout:                 "timeout",
	ErrInvalidBookID:           "invalid_book_id",
	ErrInvalidCommentID:        "invalid_comment_id",
	ErrEmptyText:               "empty_text",
	ErrInvalidPageNumber:       "invalid_page_number",
	ErrInvalidPercentageNumber: "invalid_percentage_number",
	ErrInvalidDoubleValue:      "invalid_double_value",
}

func (e Error) Error() string {
	if tag, ok := errorTags[e]; ok {
		return tag
	}

	return errorTags[ErrUnknown]
}

// Taxonomy maps backend failures onto Error.
//
//nolint:gochecknoglobals
var Taxonomy = remote.Taxonomy[Error]{
	Feature:             "comments",
	InvalidSessionToken: ErrInvalidSessionToken,
	Unauthorized:        ErrUnauthorized,
	Unknown:             ErrUnknown,
	Codes:               remote.CommonCodes(ErrUnauthorized, ErrProcessingQuery, ErrTimeout, ErrInvalidSessionToken),
}
