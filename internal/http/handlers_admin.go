package httpx

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chatloop/chat-api/internal/util"
)

const healthResponse = `{"status":"ok"}`

// statusCheckTimeout bounds each dependency ping on the status endpoint.
const statusCheckTimeout = 2 * time.Second

// healthHandler returns a simple 200 OK status for readiness/liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// AdminHandlers provides handlers for the unauthenticated operational tree.
type AdminHandlers struct {
	DB      *sql.DB
	Redis   redis.UniversalClient
	Started time.Time
}

// Status reports process uptime and dependency reachability. It lives on the
// exempt tree so probes work without a credential.
func (h *AdminHandlers) Status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), statusCheckTimeout)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			checks["database"] = "unreachable"
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}
	if h.Redis != nil {
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, map[string]any{
		"status": status,
		"uptime": util.FormatUptime(time.Since(h.Started)),
		"checks": checks,
	})
}
