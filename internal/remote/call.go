package remote

import (
	"context"
	"net/url"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
)

// NewCall returns a call sending params to ep through client.
func NewCall[T any, E Kind](
	client *http_.Client,
	operation string,
	ep http_.Endpoint,
	params url.Values,
	checks ...Check[E],
) Call[T, E] {
	return Call[T, E]{
		Operation: operation,
		Checks:    checks,
		Request: func(ctx context.Context, credential domain.Credential) (*http_.Response[T], error) {
			return http_.Call[T](ctx, client, ep, credential, params)
		},
	}
}

// NewAnonymousCall is NewCall for operations that run without a credential.
func NewAnonymousCall[T any, E Kind](
	client *http_.Client,
	operation string,
	ep http_.Endpoint,
	params url.Values,
	checks ...Check[E],
) Call[T, E] {
	call := NewCall[T](client, operation, ep, params, checks...)
	call.Anonymous = true

	return call
}
