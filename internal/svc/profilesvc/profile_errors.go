package profilesvc

import (
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
)

// Error is the failure taxonomy of the profile feature.
type Error int

const (
	ErrUnknown Error = iota
	ErrInvalidSessionToken
	ErrUnauthorized
	ErrProcessingQuery
	ErrTimeout
)

//nolint:gochecknoglobals
var errorTags = map[Error]string{
	ErrUnknown:             "unknown",
	ErrInvalidSessionToken: "invalid_session_token",
	ErrUnauthorized:        "unauthorized",
	ErrProcessingQuery:     "processing_query",
	ErrTimeout:             "timeout",
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
	Feature:             "profile",
	InvalidSessionToken: ErrInvalidSessionToken,
	Unauthorized:        ErrUnauthorized,
	Unknown:             ErrUnknown,
	Codes:               remote.CommonCodes(ErrUnauthorized, ErrProcessingQuery, ErrTimeout, ErrInvalidSessionToken),
}
