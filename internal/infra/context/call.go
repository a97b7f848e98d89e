package context

import (
	"context"
)

const contextKeyCall = contextKey("call")

// Call identifies the remote operation a context belongs to.
type Call struct {
	Feature   string
	Operation string
}

// CallFromContext extracts the remote call descriptor from the context.
func CallFromContext(ctx context.Context) (Call, bool) {
	call, ok := ctx.Value(contextKeyCall).(Call)

	return call, ok
}

// WithCall creates a new context tagged with the feature and operation of a remote call.
func WithCall(ctx context.Context, feature, operation string) context.Context {
	return context.WithValue(ctx, contextKeyCall, Call{Feature: feature, Operation: operation})
}
