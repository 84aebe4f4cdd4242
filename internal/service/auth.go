package service

import (
	"context"
	"log/slog"
	"time"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/ports"
)

// DefaultVerifyTimeout bounds the outbound provider call when the deployment
// does not configure its own limit.
const DefaultVerifyTimeout = 10 * time.Second

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Verifier ports.TokenVerifier
	// Cache is optional. When set, positive verification results are reused
	// until CacheTTL elapses.
	Cache    ports.VerificationCache
	CacheTTL time.Duration
	// Timeout bounds each provider call. Defaults to DefaultVerifyTimeout.
	Timeout time.Duration
	Logger  *slog.Logger
}

// AuthService resolves bearer credentials into verified identities. It is the
// single place the verification timeout and the optional result cache are
// applied, so the HTTP gate stays a thin adapter.
type AuthService struct {
	verifier ports.TokenVerifier
	cache    ports.VerificationCache
	cacheTTL time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		verifier: opts.Verifier,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		timeout:  timeout,
		logger:   logger,
	}
}

// VerifyCredential exchanges the raw bearer credential for the identity of its
// owner. An empty credential fails immediately without a provider call. Cache
// failures are logged and treated as misses; the provider remains the source
// of truth.
func (s *AuthService) VerifyCredential(ctx context.Context, token string) (domainauth.Identity, error) {
	if token == "" {
		return domainauth.Identity{}, domainauth.CredentialMissing()
	}

	if s.cache != nil {
		if ident, ok, err := s.cache.Get(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "verification cache get failed", "err", err)
		} else if ok {
			return ident, nil
		}
	}

	verifyCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ident, err := s.verifier.Verify(verifyCtx, token)
	if err != nil {
		// A deadline hit inside the provider call means the provider did not
		// answer in time, not that the credential is bad.
		if verifyCtx.Err() != nil && !domainauth.IsAuthError(err) {
			return domainauth.Identity{}, domainauth.ProviderUnavailable(err)
		}
		return domainauth.Identity{}, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if putErr := s.cache.Put(ctx, token, ident, s.cacheTTL); putErr != nil {
			s.logger.WarnContext(ctx, "verification cache put failed", "err", putErr)
		}
	}
	return ident, nil
}
