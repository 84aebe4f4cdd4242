package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	mockauth "github.com/chatloop/chat-api/internal/mocks/auth"
	"github.com/chatloop/chat-api/internal/service"
)

// newTestGate wires the credential gate around a handler that echoes the
// context identity.
func newTestGate(t *testing.T, exempt []string) (http.Handler, *mockauth.MockTokenVerifier) {
	t.Helper()
	verifier := mockauth.NewMockTokenVerifier()
	authSvc := service.NewAuthService(service.AuthServiceOptions{Verifier: verifier})

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := GetIdentityFromContext(r.Context())
		if !ok {
			WriteJSON(w, http.StatusOK, map[string]any{"identity": nil})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"identity": ident.ClerkID})
	})

	gate := RequireIdentity(RequireIdentityConfig{
		Verifier:       authSvc,
		ExemptPrefixes: exempt,
	})
	return gate(inner), verifier
}

func TestRequireIdentity_ValidCredential(t *testing.T) {
	handler, _ := newTestGate(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("Authorization", "valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mock-user-1")
}

func TestRequireIdentity_MissingCredential(t *testing.T) {
	handler, verifier := newTestGate(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
	assert.Empty(t, verifier.Calls(), "missing credential must not reach the provider")
}

func TestRequireIdentity_RejectedCredential(t *testing.T) {
	handler, _ := newTestGate(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("Authorization", "garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Indistinguishable from the missing-credential response.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
	assert.NotContains(t, rec.Body.String(), "unknown token")
}

func TestRequireIdentity_ProviderUnavailable(t *testing.T) {
	verifier := mockauth.NewMockTokenVerifier()
	verifier.VerifyFunc = func(_ context.Context, _ string) (domainauth.Identity, error) {
		return domainauth.Identity{}, domainauth.ProviderUnavailable(assert.AnError)
	}
	authSvc := service.NewAuthService(service.AuthServiceOptions{Verifier: verifier})
	gate := RequireIdentity(RequireIdentityConfig{Verifier: authSvc})
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("Authorization", "valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "provider_unavailable")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestRequireIdentity_ExemptPrefixBypassesVerification(t *testing.T) {
	handler, verifier := newTestGate(t, []string{"/admin"})

	req := httptest.NewRequest(http.MethodGet, "/admin/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, verifier.Calls(), "exempt paths must not reach the provider")
}

func TestRequireIdentity_ExemptMatchIsPrefixLiteral(t *testing.T) {
	handler, _ := newTestGate(t, []string{"/admin"})

	// Not under the exempt prefix, so the missing credential is rejected.
	req := httptest.NewRequest(http.MethodGet, "/api/admin-lookalike", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireIdentity_RawHeaderValueIsTheCredential(t *testing.T) {
	verifier := mockauth.NewMockTokenVerifier()
	verifier.Tokens["Bearer sess_abc"] = domainauth.Identity{ClerkID: "bearer-user"}
	authSvc := service.NewAuthService(service.AuthServiceOptions{Verifier: verifier})
	gate := RequireIdentity(RequireIdentityConfig{Verifier: authSvc})
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No scheme stripping: the header value goes to the provider as-is.
	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("Authorization", "Bearer sess_abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"Bearer sess_abc"}, verifier.Calls())
}

func TestGetIdentityFromContext_Absent(t *testing.T) {
	_, ok := GetIdentityFromContext(context.Background())
	assert.False(t, ok)
}
