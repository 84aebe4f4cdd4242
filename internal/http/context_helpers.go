package httpx

import (
	"context"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
)

// identityKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type identityKey struct{}

// SetIdentityInContext returns a child context that carries the verified identity.
func SetIdentityInContext(ctx context.Context, ident domainauth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// GetIdentityFromContext returns the verified identity from context and a
// boolean indicating presence. Handlers behind the gate can rely on presence;
// the boolean guards exempt or mis-wired routes.
func GetIdentityFromContext(ctx context.Context) (domainauth.Identity, bool) {
	if ident, ok := ctx.Value(identityKey{}).(domainauth.Identity); ok && ident.ClerkID != "" {
		return ident, true
	}
	return domainauth.Identity{}, false
}
