package clerk

// Package clerk verifies bearer credentials against a Clerk-style session API.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
)

const defaultUserIDPath = "user_id"

// maxResponseBytes caps how much of the provider response is read into memory.
const maxResponseBytes = 1 << 20

// Provider exchanges a session token for the stable identity of its owner by
// calling the external session API. It makes exactly one outbound request per
// Verify call and never retries.
type Provider struct {
	apiBase    string
	secretKey  string
	userIDPath jmespath.JMESPath
	httpClient *http.Client
}

// ProviderConfig holds configuration for the session verifier.
type ProviderConfig struct {
	// APIBase is the root of the provider API, e.g. https://api.clerk.com.
	APIBase string
	// SecretKey authenticates this backend to the provider.
	SecretKey string
	// UserIDPath is a JMESPath expression locating the user identifier in the
	// session payload. Defaults to "user_id".
	UserIDPath string
	// HTTPClient is optional and defaults to a client with a 30s timeout.
	// Per-call deadlines are expected to arrive via context.
	HTTPClient *http.Client
}

// NewProvider creates a new session verifier.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if strings.TrimSpace(cfg.APIBase) == "" {
		return nil, errors.New("API base URL is required")
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}
	if _, err := url.Parse(cfg.APIBase); err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	path := cfg.UserIDPath
	if strings.TrimSpace(path) == "" {
		path = defaultUserIDPath
	}
	compiled, err := jmespath.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID path %q: %w", path, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Provider{
		apiBase:    strings.TrimSuffix(cfg.APIBase, "/"),
		secretKey:  cfg.SecretKey,
		userIDPath: compiled,
		httpClient: httpClient,
	}, nil
}

// Verify fetches the session identified by the token and returns the stable
// identifier of the account owner.
func (p *Provider) Verify(ctx context.Context, token string) (domainauth.Identity, error) {
	if token == "" {
		return domainauth.Identity{}, domainauth.CredentialMissing()
	}

	endpoint := p.apiBase + "/v1/sessions/" + url.PathEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domainauth.Identity{}, domainauth.ProviderUnavailable(fmt.Errorf("build session request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domainauth.Identity{}, domainauth.ProviderUnavailable(fmt.Errorf("session request: %w", err))
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return domainauth.Identity{}, domainauth.ProviderUnavailable(
			fmt.Errorf("session API returned %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return domainauth.Identity{}, domainauth.ProviderRejected(
			fmt.Errorf("session API returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domainauth.Identity{}, domainauth.ProviderUnavailable(fmt.Errorf("read session response: %w", err))
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return domainauth.Identity{}, domainauth.ProviderUnavailable(fmt.Errorf("decode session response: %w", err))
	}

	userID, err := p.extractUserID(payload)
	if err != nil {
		return domainauth.Identity{}, domainauth.ProviderRejected(err)
	}
	return domainauth.Identity{ClerkID: userID}, nil
}

// extractUserID applies the configured JMESPath expression to the session
// payload. A session without a usable user identifier is treated as rejected.
func (p *Provider) extractUserID(payload any) (string, error) {
	v, err := p.userIDPath.Search(payload)
	if err != nil {
		return "", fmt.Errorf("search user ID in session payload: %w", err)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errors.New("session payload has no user identifier")
	}
	return s, nil
}
