package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/chatloop/chat-api/config"
	"github.com/chatloop/chat-api/internal/adapters/clerk"
	"github.com/chatloop/chat-api/internal/adapters/devauth"
	"github.com/chatloop/chat-api/internal/adapters/oidc"
	redisadapter "github.com/chatloop/chat-api/internal/adapters/redis"
	"github.com/chatloop/chat-api/internal/ports"
	"github.com/chatloop/chat-api/internal/service"
)

// AuthDeps contains dependencies for credential gate construction.
type AuthDeps struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService wires the configured identity provider and the optional
// verification cache into an AuthService.
func BuildAuthService(ctx context.Context, deps AuthDeps) (*service.AuthService, error) {
	verifier, err := buildVerifier(ctx, deps.Auth)
	if err != nil {
		return nil, err
	}

	var cache ports.VerificationCache
	if deps.Auth.CacheEnabled {
		if deps.RedisClient == nil {
			if deps.Logger != nil {
				deps.Logger.Warn("verification cache enabled but redis client not configured; caching disabled")
			}
		} else {
			cache = redisadapter.NewVerificationCache(deps.RedisClient)
		}
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Verifier: verifier,
		Cache:    cache,
		CacheTTL: deps.Auth.CacheTTL,
		Timeout:  deps.Auth.VerifyTimeout,
		Logger:   deps.Logger,
	}), nil
}

//nolint:ireturn // the verifier implementation is selected by configuration.
func buildVerifier(ctx context.Context, cfg config.AuthConfig) (ports.TokenVerifier, error) {
	switch cfg.Mode {
	case config.AuthModeClerk:
		if cfg.Clerk.SecretKey == "" {
			return nil, fmt.Errorf("auth mode %q requires CLERK_SECRET_KEY", cfg.Mode)
		}
		return clerk.NewProvider(clerk.ProviderConfig{
			APIBase:    cfg.Clerk.APIBase,
			SecretKey:  cfg.Clerk.SecretKey,
			UserIDPath: cfg.Clerk.UserIDPath,
			HTTPClient: &http.Client{Timeout: cfg.VerifyTimeout},
		})

	case config.AuthModeOIDC:
		if cfg.OIDC.DiscoveryURL == "" || cfg.OIDC.ClientID == "" {
			return nil, fmt.Errorf("auth mode %q requires OIDC_DISCOVERY_URL and OIDC_CLIENT_ID", cfg.Mode)
		}
		return oidc.NewProvider(ctx, oidc.ProviderConfig{
			ClientID:     cfg.OIDC.ClientID,
			DiscoveryURL: cfg.OIDC.DiscoveryURL,
		})

	case config.AuthModeStatic:
		tokens, err := devauth.ParseTokenTable(cfg.Static.Tokens)
		if err != nil {
			return nil, err
		}
		return devauth.NewProvider(devauth.Config{Tokens: tokens})

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}
