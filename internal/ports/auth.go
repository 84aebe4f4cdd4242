package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
)

// TokenVerifier exchanges an opaque bearer credential with an identity
// provider for a verified identity. Implementations make at most one
// outbound call per invocation and never retry.
//
// Failures are reported as tagged domain auth errors: a refused credential
// or an unusable session document yields a provider-rejected error, while
// transport and provider-side failures yield provider-unavailable.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domainauth.Identity, error)
}

// VerificationCache is an optional short-TTL cache in front of a
// TokenVerifier. Get reports a miss with found=false and a nil error;
// errors are reserved for backend failures.
type VerificationCache interface {
	Get(ctx context.Context, token string) (identity domainauth.Identity, found bool, err error)
	Put(ctx context.Context, token string, identity domainauth.Identity, ttl time.Duration) error
}
