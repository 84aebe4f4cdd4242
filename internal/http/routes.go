package httpx

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chatloop/chat-api/internal/observability/statsd"
	"github.com/chatloop/chat-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       CredentialVerifier
	Accounts   *service.AccountService
	UserChats  *service.UserChatService
	GroupChats *service.GroupChatService
	Messages   *service.MessageService
	// ExemptPrefixes lists path prefixes that bypass the credential gate.
	ExemptPrefixes []string
	// DB and Redis are pinged by the status endpoint when set.
	DB    *sql.DB
	Redis redis.UniversalClient
	// Metrics receives per-request metrics when set.
	Metrics statsd.Sink
	Logger  *slog.Logger
	Started time.Time
}

// NewRouter creates and configures the HTTP router. Every route outside the
// exempt prefixes sits behind the credential gate.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	started := services.Started
	if started.IsZero() {
		started = time.Now()
	}

	mux := http.NewServeMux()

	accountHandlers := &AccountHandlers{Svc: services.Accounts}
	userChatHandlers := &UserChatHandlers{Svc: services.UserChats}
	groupChatHandlers := &GroupChatHandlers{Svc: services.GroupChats}
	messageHandlers := &MessageHandlers{Svc: services.Messages}
	adminHandlers := &AdminHandlers{DB: services.DB, Redis: services.Redis, Started: started}

	registerAccountRoutes(mux, accountHandlers)
	registerUserChatRoutes(mux, userChatHandlers)
	registerGroupChatRoutes(mux, groupChatHandlers)
	registerMessageRoutes(mux, messageHandlers)
	registerAdminRoutes(mux, adminHandlers)

	gate := RequireIdentity(RequireIdentityConfig{
		Verifier:       services.Auth,
		ExemptPrefixes: services.ExemptPrefixes,
		Logger:         logger,
	})

	var handler http.Handler = mux
	handler = gate(handler)
	if services.Metrics != nil {
		handler = Metrics(services.Metrics)(handler)
	}
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerAccountRoutes(mux *http.ServeMux, h *AccountHandlers) {
	mux.HandleFunc("POST /api/accounts", h.Create)
	mux.HandleFunc("GET /api/accounts", h.List)
	mux.HandleFunc("GET /api/accounts/{id}", h.GetByID)
	mux.HandleFunc("PATCH /api/accounts/{id}", h.Update)

	// Unscoped directory surface for peer discovery. Still behind the gate,
	// but not owner-filtered.
	mux.HandleFunc("GET /api/directory/accounts", h.ListDirectory)
	mux.HandleFunc("GET /api/directory/accounts/{id}", h.GetDirectory)
}

func registerUserChatRoutes(mux *http.ServeMux, h *UserChatHandlers) {
	mux.HandleFunc("POST /api/user-chats", h.Create)
	mux.HandleFunc("GET /api/user-chats", h.List)
	mux.HandleFunc("GET /api/user-chats/{id}", h.GetByID)
	mux.HandleFunc("PATCH /api/user-chats/{id}", h.Touch)
}

func registerGroupChatRoutes(mux *http.ServeMux, h *GroupChatHandlers) {
	mux.HandleFunc("POST /api/group-chats", h.Create)
	mux.HandleFunc("GET /api/group-chats", h.List)
	mux.HandleFunc("GET /api/group-chats/{id}", h.GetByID)
	mux.HandleFunc("PATCH /api/group-chats/{id}", h.Update)
	mux.HandleFunc("POST /api/group-chats/{id}/members/{accountID}", h.AddMember)
	mux.HandleFunc("DELETE /api/group-chats/{id}/members/{accountID}", h.RemoveMember)
}

func registerMessageRoutes(mux *http.ServeMux, h *MessageHandlers) {
	mux.HandleFunc("POST /api/messages", h.Create)
	mux.HandleFunc("GET /api/messages", h.List)
	mux.HandleFunc("GET /api/messages/{id}", h.GetByID)
	mux.HandleFunc("PATCH /api/messages/{id}", h.Update)
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers) {
	mux.Handle("GET /admin/healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /admin/healthz", http.HandlerFunc(healthHandler))
	mux.HandleFunc("GET /admin/status", h.Status)
}
