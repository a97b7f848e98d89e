// Package context carries request-scoped values of a remote call: the trace id sent to the
// backend and the feature/operation pair that issued the call.
package context

type contextKey string
