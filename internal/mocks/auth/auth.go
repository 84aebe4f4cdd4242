package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenVerifier     = (*MockTokenVerifier)(nil)
	_ ports.VerificationCache = (*MemoryVerificationCache)(nil)
)

// MockTokenVerifier simulates an identity provider for tests. By default it
// resolves tokens from a static table; VerifyFunc overrides everything.
type MockTokenVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (domainauth.Identity, error)

	// Tokens maps accepted tokens to the identity each resolves to.
	Tokens map[string]domainauth.Identity

	mu    sync.Mutex
	calls []string
}

// NewMockTokenVerifier creates a MockTokenVerifier with one accepted token.
func NewMockTokenVerifier() *MockTokenVerifier {
	return &MockTokenVerifier{
		Tokens: map[string]domainauth.Identity{
			"valid-token": {ClerkID: "mock-user-1"},
		},
	}
}

func (m *MockTokenVerifier) Verify(ctx context.Context, token string) (domainauth.Identity, error) {
	m.mu.Lock()
	m.calls = append(m.calls, token)
	m.mu.Unlock()

	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	if token == "" {
		return domainauth.Identity{}, domainauth.CredentialMissing()
	}
	ident, ok := m.Tokens[token]
	if !ok {
		return domainauth.Identity{}, domainauth.ProviderRejected(errors.New("unknown token"))
	}
	return ident, nil
}

// Calls returns the tokens Verify has been called with, in order.
func (m *MockTokenVerifier) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// memoryEntry is a cached identity with its expiry.
type memoryEntry struct {
	ident     domainauth.Identity
	expiresAt time.Time
}

// MemoryVerificationCache is an in-memory ports.VerificationCache for tests.
type MemoryVerificationCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// GetErr and PutErr force failures when set.
	GetErr error
	PutErr error
}

// NewMemoryVerificationCache creates an empty in-memory verification cache.
func NewMemoryVerificationCache() *MemoryVerificationCache {
	return &MemoryVerificationCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryVerificationCache) Get(_ context.Context, token string) (domainauth.Identity, bool, error) {
	if c.GetErr != nil {
		return domainauth.Identity{}, false, c.GetErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[token]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(c.entries, token)
		return domainauth.Identity{}, false, nil
	}
	return entry.ident, true, nil
}

func (c *MemoryVerificationCache) Put(
	_ context.Context,
	token string,
	ident domainauth.Identity,
	ttl time.Duration,
) error {
	if c.PutErr != nil {
		return c.PutErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = memoryEntry{ident: ident, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Len reports how many entries the cache holds, expired ones included.
func (c *MemoryVerificationCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
