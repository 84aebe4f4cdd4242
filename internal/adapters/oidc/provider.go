package oidc

// Package oidc verifies bearer credentials as OIDC ID tokens.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
)

// Provider implements token verification by treating the bearer credential as
// an OIDC ID token and validating it against the issuer's published keys. The
// subject claim becomes the stable identity. Key-set fetches are handled by
// go-oidc's remote key set with internal caching, so a Verify call makes at
// most one outbound request.
type Provider struct {
	verifier *gooidc.IDTokenVerifier
}

// ProviderConfig holds configuration for the OIDC verifier.
type ProviderConfig struct {
	ClientID     string
	DiscoveryURL string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new OIDC verifier. Discovery runs once at construction.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	// Initialize go-oidc provider and verifier (single discovery fetch)
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Provider{
		verifier: op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// Verify validates the token signature, issuer, audience and expiry, then
// extracts the subject claim as the caller's stable identifier.
func (p *Provider) Verify(ctx context.Context, token string) (domainauth.Identity, error) {
	if token == "" {
		return domainauth.Identity{}, domainauth.CredentialMissing()
	}

	idToken, err := p.verifier.Verify(ctx, token)
	if err != nil {
		// Context errors indicate we could not reach the key set, not that
		// the token itself is bad.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return domainauth.Identity{}, domainauth.ProviderUnavailable(err)
		}
		return domainauth.Identity{}, domainauth.ProviderRejected(err)
	}
	if idToken.Subject == "" {
		return domainauth.Identity{}, domainauth.ProviderRejected(errors.New("ID token has no subject"))
	}
	return domainauth.Identity{ClerkID: idToken.Subject}, nil
}
