package clerk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, cfg ProviderConfig) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.APIBase = srv.URL
	if cfg.SecretKey == "" {
		cfg.SecretKey = "sk_test_secret"
	}
	p, err := NewProvider(cfg)
	require.NoError(t, err)
	return p
}

func TestProvider_Verify_Success(t *testing.T) {
	var gotPath, gotAuth string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"sess_123","user_id":"user_abc","status":"active"}`))
	}, ProviderConfig{})

	ident, err := p.Verify(context.Background(), "sess_123")
	require.NoError(t, err)
	assert.Equal(t, "user_abc", ident.ClerkID)
	assert.Equal(t, "/v1/sessions/sess_123", gotPath)
	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
}

func TestProvider_Verify_CustomUserIDPath(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"session":{"owner":{"id":"user_nested"}}}`))
	}, ProviderConfig{UserIDPath: "session.owner.id"})

	ident, err := p.Verify(context.Background(), "sess_456")
	require.NoError(t, err)
	assert.Equal(t, "user_nested", ident.ClerkID)
}

func TestProvider_Verify_EmptyToken(t *testing.T) {
	var called bool
	p := newTestProvider(t, func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}, ProviderConfig{})

	_, err := p.Verify(context.Background(), "")
	assert.Equal(t, domainauth.KindCredentialMissing, domainauth.KindOf(err))
	assert.False(t, called, "provider must not be called for an empty token")
}

func TestProvider_Verify_UnknownSession(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, ProviderConfig{})

	_, err := p.Verify(context.Background(), "sess_unknown")
	assert.Equal(t, domainauth.KindProviderRejected, domainauth.KindOf(err))
}

func TestProvider_Verify_MissingUserID(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"sess_789","status":"active"}`))
	}, ProviderConfig{})

	_, err := p.Verify(context.Background(), "sess_789")
	assert.Equal(t, domainauth.KindProviderRejected, domainauth.KindOf(err))
}

func TestProvider_Verify_ServerError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, ProviderConfig{})

	_, err := p.Verify(context.Background(), "sess_down")
	assert.Equal(t, domainauth.KindProviderUnavailable, domainauth.KindOf(err))
}

func TestProvider_Verify_Unreachable(t *testing.T) {
	p, err := NewProvider(ProviderConfig{
		APIBase:   "http://127.0.0.1:1",
		SecretKey: "sk_test_secret",
	})
	require.NoError(t, err)

	_, err = p.Verify(context.Background(), "sess_any")
	assert.Equal(t, domainauth.KindProviderUnavailable, domainauth.KindOf(err))
}

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(ProviderConfig{SecretKey: "sk"})
	require.Error(t, err)

	_, err = NewProvider(ProviderConfig{APIBase: "https://api.example.com"})
	require.Error(t, err)

	_, err = NewProvider(ProviderConfig{
		APIBase:    "https://api.example.com",
		SecretKey:  "sk",
		UserIDPath: "not a valid ]expression",
	})
	require.Error(t, err)
}
