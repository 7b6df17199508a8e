package utils

import (
	"context"

	"yamdb-api/pkg/authz"
)

type contextKey string

const principalKey contextKey = "principal"

// SetPrincipal stores the authenticated principal on the request context.
func SetPrincipal(ctx context.Context, p authz.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the principal set by the auth middleware, or the
// anonymous principal when the request carried no credentials.
func GetPrincipal(ctx context.Context) authz.Principal {
	val := ctx.Value(principalKey)
	if val == nil {
		return authz.Anonymous()
	}

	p, ok := val.(authz.Principal)
	if !ok {
		return authz.Anonymous()
	}

	return p
}
