package redis

// Package redis provides Redis-based adapters for the chat backend.

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
)

// VerificationCache is a Redis-backed cache of token verification results. It
// lets the gate skip the outbound provider call for recently seen credentials.
// Keys are a hash of the token so raw credentials never land in Redis.
type VerificationCache struct {
	client redis.UniversalClient
	prefix string
}

// NewVerificationCache creates a new Redis-based verification cache.
func NewVerificationCache(client redis.UniversalClient) *VerificationCache {
	return &VerificationCache{
		client: client,
		prefix: "verify:",
	}
}

// NewVerificationCacheWithPrefix creates a verification cache with a custom key prefix.
func NewVerificationCacheWithPrefix(client redis.UniversalClient, prefix string) *VerificationCache {
	return &VerificationCache{
		client: client,
		prefix: prefix,
	}
}

// Get returns the cached identity for the token, if present.
func (c *VerificationCache) Get(ctx context.Context, token string) (domainauth.Identity, bool, error) {
	if token == "" {
		return domainauth.Identity{}, false, nil
	}

	data, err := c.client.Get(ctx, c.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Identity{}, false, nil
		}
		return domainauth.Identity{}, false, fmt.Errorf("redis get: %w", err)
	}

	var ident domainauth.Identity
	if unmarshalErr := json.Unmarshal([]byte(data), &ident); unmarshalErr != nil {
		return domainauth.Identity{}, false, fmt.Errorf("unmarshal identity: %w", unmarshalErr)
	}
	return ident, true, nil
}

// Put stores the identity for the token with the given TTL. Only positive
// verification results are cached; rejections always go back to the provider.
func (c *VerificationCache) Put(
	ctx context.Context,
	token string,
	ident domainauth.Identity,
	ttl time.Duration,
) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}

	data, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	return c.client.Set(ctx, c.key(token), data, ttl).Err()
}

func (c *VerificationCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return c.prefix + hex.EncodeToString(sum[:])
}
