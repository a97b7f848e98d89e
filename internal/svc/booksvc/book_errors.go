package booksvc

import (
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
)

// Error is the failure taxonomy of the book feature.
type Error int

const (
	ErrUnknown Error = iota
	ErrInvalidSessionToken
	ErrUnauthorized
	ErrProcessingQuery
	ErrTimeout
	ErrInvalidBookID
	ErrInvalidPageNumber
	ErrInvalidPercentageNumber
	ErrInvalidRateNumber
	ErrInvalidDoubleValue
	ErrInvalidFinishedAndGiveUpBookValues
	ErrEmptySearchTerm
	ErrInvalidRateID
)

//nolint:gochecknoglobals
var errorTags = map[Error]string{
	ErrUnknown:                            "unknown",
	ErrInvalidSessionToken:                "invalid_session_token",
	ErrUnauthorized:                       "unauthorized",
	ErrProcessingQuery:                    "processing_query",
	ErrTimeout:                            "timeout",
	ErrInvalidBookID:                      "invalid_book_id",
	ErrInvalidPageNumber:                  "invalid_page_number",
	ErrInvalidPercentageNumber:            "invalid_percentage_number",
	ErrInvalidRateNumber:                  "invalid_rate_number",
	ErrInvalidDoubleValue:                 "invalid_double_value",
	ErrInvalidFinishedAndGiveUpBookValues: "invalid_finished_and_give_up",
	ErrEmptySearchTerm:                    "empty_search_term",
	ErrInvalidRateID:                      "invalid_rate_id",
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
	Feature:             "book",
	InvalidSessionToken: ErrInvalidSessionToken,
	Unauthorized:        ErrUnauthorized,
	Unknown:             ErrUnknown,
	Codes:               remote.CommonCodes(ErrUnauthorized, ErrProcessingQuery, ErrTimeout, ErrInvalidSessionToken),
}
