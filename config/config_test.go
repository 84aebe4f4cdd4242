package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAuthModeUnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    AuthMode
		expectError bool
	}{
		{name: "clerk", input: "clerk", expected: AuthModeClerk},
		{name: "oidc", input: "oidc", expected: AuthModeOIDC},
		{name: "static", input: "static", expected: AuthModeStatic},
		{name: "uppercase is normalized", input: "CLERK", expected: AuthModeClerk},
		{name: "unknown mode", input: "ldap", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q, got mode %q", tt.input, mode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, mode)
			}
		})
	}
}

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parsing defaults: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeClerk {
		t.Errorf("expected default auth mode clerk, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.VerifyTimeout != 10*time.Second {
		t.Errorf("expected default verify timeout 10s, got %s", cfg.Auth.VerifyTimeout)
	}
	if cfg.Auth.CacheEnabled {
		t.Error("expected verification cache disabled by default")
	}
	if len(cfg.Auth.ExemptPrefixes) != 1 || cfg.Auth.ExemptPrefixes[0] != "/admin" {
		t.Errorf("expected default exempt prefixes [/admin], got %v", cfg.Auth.ExemptPrefixes)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("expected default db port 5432, got %d", cfg.Postgres.Port)
	}
	if !cfg.Postgres.RunMigrationsOnStart {
		t.Error("expected migrations on start by default")
	}
	if cfg.Auth.Clerk.APIBase != "https://api.clerk.com" {
		t.Errorf("unexpected default Clerk API base %q", cfg.Auth.Clerk.APIBase)
	}
	if cfg.Auth.Clerk.UserIDPath != "user_id" {
		t.Errorf("unexpected default Clerk user ID path %q", cfg.Auth.Clerk.UserIDPath)
	}
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "static")
	t.Setenv("STATIC_AUTH_TOKENS", "tok-a=user-a;tok-b=user-b")
	t.Setenv("AUTH_EXEMPT_PREFIXES", "/admin;/internal")
	t.Setenv("AUTH_CACHE_ENABLED", "true")
	t.Setenv("AUTH_CACHE_TTL", "2m")
	t.Setenv("DB_NAME", "chatloop_test")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parsing env: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeStatic {
		t.Errorf("expected static mode, got %q", cfg.Auth.Mode)
	}
	if len(cfg.Auth.Static.Tokens) != 2 {
		t.Errorf("expected 2 static tokens, got %v", cfg.Auth.Static.Tokens)
	}
	if len(cfg.Auth.ExemptPrefixes) != 2 || cfg.Auth.ExemptPrefixes[1] != "/internal" {
		t.Errorf("unexpected exempt prefixes %v", cfg.Auth.ExemptPrefixes)
	}
	if !cfg.Auth.CacheEnabled || cfg.Auth.CacheTTL != 2*time.Minute {
		t.Errorf("unexpected cache config: enabled=%v ttl=%s", cfg.Auth.CacheEnabled, cfg.Auth.CacheTTL)
	}
	if cfg.Postgres.Name != "chatloop_test" {
		t.Errorf("expected db name chatloop_test, got %q", cfg.Postgres.Name)
	}
}

func TestAuthConfigSanitize(t *testing.T) {
	a := AuthConfig{VerifyTimeout: -time.Second, CacheEnabled: true, CacheTTL: 0}
	a.Sanitize()

	if a.VerifyTimeout != 10*time.Second {
		t.Errorf("expected timeout reset to 10s, got %s", a.VerifyTimeout)
	}
	if a.CacheEnabled {
		t.Error("expected cache disabled when TTL is non-positive")
	}
}
