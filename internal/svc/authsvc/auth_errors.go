package authsvc

import (
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
)

// Error is the failure taxonomy of the authentication feature.
type Error int

const (
	ErrUnknown Error = iota
	ErrInvalidSessionToken
	ErrUnauthorized
	ErrEmptyCredentials
	ErrWrongEmailFormat
	ErrInvalidEmail
	ErrUsernameTaken
	ErrEmailTaken
	ErrProcessingQuery
	ErrTimeout
)

//nolint:gochecknoglobals
var errorTags = map[Error]string{
	ErrUnknown:             "unknown",
	ErrInvalidSessionToken: "invalid_session_token",
	ErrUnauthorized:        "unauthorized",
	ErrEmptyCredentials:    "empty_credentials",
	ErrWrongEmailFormat:    "wrong_email_format",
	ErrInvalidEmail:        "invalid_email",
	ErrUsernameTaken:       "username_taken",
	ErrEmailTaken:          "email_taken",
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
	Feature:             "auth",
	InvalidSessionToken: ErrInvalidSessionToken,
	Unauthorized:        ErrUnauthorized,
	Unknown:             ErrUnknown,
	Codes: func() map[int]Error {
		codes := remote.CommonCodes(ErrUnauthorized, ErrProcessingQuery, ErrTimeout, ErrInvalidSessionToken)
		codes[remote.CodeInvalidEmail] = ErrInvalidEmail
		codes[remote.CodeUsernameTaken] = ErrUsernameTaken
		codes[remote.CodeEmailTaken] = ErrEmailTaken

		return codes
	}(),
}
