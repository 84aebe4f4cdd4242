package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/observability/metrics"
	"github.com/chatloop/chat-api/internal/observability/statsd"
)

// CredentialVerifier exchanges a raw bearer credential for a verified
// identity. Satisfied by service.AuthService.
type CredentialVerifier interface {
	VerifyCredential(ctx context.Context, token string) (domainauth.Identity, error)
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Metrics returns a middleware that emits request count and latency metrics
// to the given sink. The route tag uses the matched mux pattern so path
// parameters do not blow up tag cardinality.
func Metrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			metrics.EmitHTTPRequest(sink, metrics.HTTPMetric{
				Method:   r.Method,
				Route:    r.Pattern,
				Status:   ww.status,
				Duration: time.Since(start),
			})
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentityConfig configures the credential gate.
type RequireIdentityConfig struct {
	Verifier CredentialVerifier
	// ExemptPrefixes lists path prefixes that bypass verification entirely.
	ExemptPrefixes []string
	Logger         *slog.Logger
}

// RequireIdentity returns a middleware that verifies the bearer credential on
// every request whose path does not match an exempt prefix. On success the
// verified identity is added to the request context.
//
// The credential is the raw Authorization header value. Rejected, missing,
// and ownership errors all collapse into one generic 403 so responses never
// reveal whether a credential was close to valid; only an unreachable
// provider is reported differently, as a 503.
func RequireIdentity(cfg RequireIdentityConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if pathExempt(r.URL.Path, cfg.ExemptPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			token := r.Header.Get("Authorization")
			ident, err := cfg.Verifier.VerifyCredential(r.Context(), token)
			if err != nil {
				writeAuthError(w, r, logger, err)
				return
			}

			ctx := SetIdentityInContext(r.Context(), ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// pathExempt reports whether the path falls under any exempt prefix.
func pathExempt(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// writeAuthError maps a verification failure to its response. The provider
// detail stays in the logs.
func writeAuthError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if domainauth.IsProviderUnavailable(err) {
		logger.ErrorContext(r.Context(), "identity provider unavailable",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		WriteError(w, ErrorParams{
			Code:    http.StatusServiceUnavailable,
			ErrCode: "provider_unavailable",
			Err:     errors.New("identity provider unavailable"),
		})
		return
	}

	logger.InfoContext(r.Context(), "request rejected",
		slog.String("path", r.URL.Path),
		slog.String("kind", string(domainauth.KindOf(err))),
	)
	WriteError(w, ErrorParams{
		Code:    http.StatusForbidden,
		ErrCode: "forbidden",
		Err:     errors.New("forbidden"),
	})
}

// WriteDomainAuthError writes the generic response for an auth-tagged error
// surfaced by a service call inside a handler.
func WriteDomainAuthError(w http.ResponseWriter, _ error) {
	WriteError(w, ErrorParams{
		Code:    http.StatusForbidden,
		ErrCode: "forbidden",
		Err:     errors.New("forbidden"),
	})
}
