package domain

import (
	"encoding/json"
	"strings"
)

// Credential is the opaque session token proving an authenticated user to the backend.
// The zero value means no session.
type Credential string

// IsBlank reports whether the credential is empty or whitespace only.
func (c Credential) IsBlank() bool {
	return strings.TrimSpace(string(c)) == ""
}

// String implements fmt.Stringer without exposing the token.
func (c Credential) String() string {
	if c.IsBlank() {
		return ""
	}

	return "[credential]"
}

// Session is the payload of a successful login.
type Session struct {
	Token    Credential `json:"sessionToken"`
	UserID   string     `json:"objectId"`
	Username string     `json:"username"`
}

// None is the payload of operations without a meaningful result.
// It accepts any JSON value.
type None struct{}

// UnmarshalJSON implements json.Unmarshaler by discarding the input.
func (*None) UnmarshalJSON([]byte) error {
	return nil
}

// UnmarshalJSON accepts either a session object or a bare token string.
func (s *Session) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err == nil {
		*s = Session{Token: Credential(token)}

		return nil
	}

	type plain Session

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err //nolint:wrapcheck
	}

	*s = Session(p)

	return nil
}
