package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the credential verification mode for the application.
type AuthMode string

const (
	// AuthModeClerk verifies bearer credentials against the Clerk sessions API.
	AuthModeClerk AuthMode = "clerk"
	// AuthModeOIDC verifies bearer credentials as OIDC ID tokens.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeStatic uses a static token table (for development only).
	AuthModeStatic AuthMode = "static"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "clerk", "oidc", "static":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: clerk, oidc, static)", v)
	}
}

// ClerkConfig contains Clerk identity provider configuration.
// The secret key is injected, never compiled in.
type ClerkConfig struct {
	SecretKey  string `env:"SECRET_KEY"`
	APIBase    string `env:"API_BASE"     envDefault:"https://api.clerk.com"`
	UserIDPath string `env:"USER_ID_PATH" envDefault:"user_id"`
}

// OIDCConfig contains OIDC verification configuration.
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// StaticAuthConfig controls static token verification.
// Used when AUTH_MODE=static for development and testing.
type StaticAuthConfig struct {
	// Tokens is a list of token=user_id pairs.
	Tokens []string `env:"TOKENS" envDefault:"dev-token=dev-user" envSeparator:";"`
}

// AuthConfig groups all credential gate configuration.
type AuthConfig struct {
	// Mode determines which identity provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"clerk"`

	// Clerk configuration (used when Mode=clerk).
	Clerk ClerkConfig `envPrefix:"CLERK_"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// Static configuration (used when Mode=static).
	Static StaticAuthConfig `envPrefix:"STATIC_AUTH_"`

	// ExemptPrefixes lists path prefixes that bypass the credential gate.
	ExemptPrefixes []string `env:"AUTH_EXEMPT_PREFIXES" envDefault:"/admin" envSeparator:";"`

	// VerifyTimeout bounds each outbound provider call.
	VerifyTimeout time.Duration `env:"AUTH_VERIFY_TIMEOUT" envDefault:"10s"`

	// CacheEnabled turns on the Redis-backed verification result cache.
	CacheEnabled bool `env:"AUTH_CACHE_ENABLED" envDefault:"false"`

	// CacheTTL is the lifetime of cached verification results.
	CacheTTL time.Duration `env:"AUTH_CACHE_TTL" envDefault:"60s"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.VerifyTimeout <= 0 {
		a.VerifyTimeout = 10 * time.Second
	}
	if a.CacheTTL <= 0 {
		a.CacheEnabled = false
	}
}
