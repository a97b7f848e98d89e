package logging

import (
	"log/slog"
	"strings"
)

const redacted = "[redacted]"

//nolint:gochecknoglobals
var secretKeys = map[string]struct{}{
	"credential":    {},
	"password":      {},
	"passphrase":    {},
	"session_token": {},
	"sessiontoken":  {},
	"token":         {},
}

// RedactAttr masks the value of attributes whose key names a secret.
// Groups are walked recursively so nested attributes are masked as well.
func RedactAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() == slog.KindGroup {
		group := attr.Value.Group()
		masked := make([]any, 0, len(group))

		for _, a := range group {
			masked = append(masked, RedactAttr(a))
		}

		return slog.Group(attr.Key, masked...)
	}

	if _, ok := secretKeys[strings.ToLower(attr.Key)]; ok && attr.Value.String() != "" {
		return slog.String(attr.Key, redacted)
	}

	return attr
}
