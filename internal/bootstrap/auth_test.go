package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/chatloop/chat-api/config"
)

func TestBuildAuthService_StaticMode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := BuildAuthService(context.Background(), AuthDeps{
		Auth: config.AuthConfig{
			Mode:   config.AuthModeStatic,
			Static: config.StaticAuthConfig{Tokens: []string{"tok=user-1"}},
		},
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("BuildAuthService() error = %v", err)
	}
	if svc == nil {
		t.Fatal("BuildAuthService() = nil, want service")
	}

	ident, err := svc.VerifyCredential(context.Background(), "tok")
	if err != nil {
		t.Fatalf("VerifyCredential() error = %v", err)
	}
	if ident.ClerkID != "user-1" {
		t.Fatalf("VerifyCredential() clerk id = %q, want %q", ident.ClerkID, "user-1")
	}
}

func TestBuildAuthService_ClerkModeRequiresSecret(t *testing.T) {
	_, err := BuildAuthService(context.Background(), AuthDeps{
		Auth: config.AuthConfig{Mode: config.AuthModeClerk},
	})
	if err == nil {
		t.Fatal("expected error for clerk mode without secret key")
	}
}

func TestBuildAuthService_UnsupportedMode(t *testing.T) {
	_, err := BuildAuthService(context.Background(), AuthDeps{
		Auth: config.AuthConfig{Mode: config.AuthMode("ldap")},
	})
	if err == nil {
		t.Fatal("expected error for unsupported mode")
	}
}
