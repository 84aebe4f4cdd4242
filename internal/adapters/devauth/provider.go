package devauth

// Package devauth provides a simple, config-driven token verifier for local development.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
)

// Provider implements token verification for local development. It resolves
// credentials from a static token-to-identity table instead of calling an
// external provider, so the full request path can run offline.
type Provider struct {
	tokens map[string]string
}

// Config controls the dev verifier behavior.
type Config struct {
	// Tokens maps accepted bearer tokens to the stable user identifier each
	// one resolves to.
	Tokens map[string]string
}

// NewProvider constructs a dev verifier from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if len(cfg.Tokens) == 0 {
		return nil, errors.New("dev auth: at least one token is required")
	}
	tokens := make(map[string]string, len(cfg.Tokens))
	for token, userID := range cfg.Tokens {
		if strings.TrimSpace(token) == "" || strings.TrimSpace(userID) == "" {
			return nil, errors.New("dev auth: tokens and user IDs cannot be empty")
		}
		tokens[token] = userID
	}
	return &Provider{tokens: tokens}, nil
}

// ParseTokenTable parses "token=userID" pairs, as supplied via configuration.
func ParseTokenTable(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		token, userID, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("dev auth: invalid token pair %q, want token=user_id", pair)
		}
		out[strings.TrimSpace(token)] = strings.TrimSpace(userID)
	}
	return out, nil
}

// Verify resolves the token from the static table.
func (p *Provider) Verify(_ context.Context, token string) (domainauth.Identity, error) {
	if token == "" {
		return domainauth.Identity{}, domainauth.CredentialMissing()
	}
	userID, ok := p.tokens[token]
	if !ok {
		return domainauth.Identity{}, domainauth.ProviderRejected(errors.New("unknown dev token"))
	}
	return domainauth.Identity{ClerkID: userID}, nil
}
