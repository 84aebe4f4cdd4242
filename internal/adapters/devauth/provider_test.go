package devauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
)

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(Config{})
	require.Error(t, err)

	_, err = NewProvider(Config{Tokens: map[string]string{"": "user_1"}})
	require.Error(t, err)

	_, err = NewProvider(Config{Tokens: map[string]string{"tok": " "}})
	require.Error(t, err)
}

func TestProvider_Verify(t *testing.T) {
	p, err := NewProvider(Config{Tokens: map[string]string{
		"dev-token-alice": "user_alice",
		"dev-token-bob":   "user_bob",
	}})
	require.NoError(t, err)

	ident, err := p.Verify(context.Background(), "dev-token-alice")
	require.NoError(t, err)
	assert.Equal(t, "user_alice", ident.ClerkID)

	_, err = p.Verify(context.Background(), "")
	assert.Equal(t, domainauth.KindCredentialMissing, domainauth.KindOf(err))

	_, err = p.Verify(context.Background(), "stale-token")
	assert.Equal(t, domainauth.KindProviderRejected, domainauth.KindOf(err))
}

func TestParseTokenTable(t *testing.T) {
	table, err := ParseTokenTable([]string{"tok1=user_1", "tok2 = user_2"})
	require.NoError(t, err)
	assert.Equal(t, "user_1", table["tok1"])
	assert.Equal(t, "user_2", table["tok2"])

	_, err = ParseTokenTable([]string{"no-separator"})
	require.Error(t, err)
}
