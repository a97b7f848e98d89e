package remote

import (
	"net/http"

	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
)

// Backend error codes shared by all features.
const (
	CodeUnauthorized   = 101
	CodeTimeout        = 124
	CodeInvalidEmail   = 125
	CodeProcessing     = 141
	CodeUsernameTaken  = 202
	CodeEmailTaken     = 203
	CodeInvalidSession = 209
)

// StatusInvalidSession is the non-standard HTTP status the backend uses for an expired session.
const StatusInvalidSession = http_.StatusInvalidSession

// Taxonomy describes how backend failures map onto a feature's error kinds.
type Taxonomy[E Kind] struct {
	// Feature names the feature in logs and metrics.
	Feature string

	InvalidSessionToken E
	Unauthorized        E
	Unknown             E

	// Codes maps backend error codes to kinds. Codes missing here classify as Unknown.
	Codes map[int]E
}

// CommonCodes builds the code table every feature shares.
func CommonCodes[E Kind](unauthorized, processing, timeout, invalidSession E) map[int]E {
	return map[int]E{
		CodeUnauthorized:   unauthorized,
		CodeProcessing:     processing,
		CodeTimeout:        timeout,
		CodeInvalidSession: invalidSession,
	}
}

// Classify returns the kind for a backend error code.
func (t Taxonomy[E]) Classify(code int) E {
	if kind, ok := t.Codes[code]; ok {
		return kind
	}

	return t.Unknown
}

// ClassifyStatus returns the kind for an HTTP status reported as transport error.
func (t Taxonomy[E]) ClassifyStatus(status int) E {
	switch status {
	case http.StatusUnauthorized:
		return t.Unauthorized
	case StatusInvalidSession:
		return t.InvalidSessionToken
	default:
		return t.Unknown
	}
}
