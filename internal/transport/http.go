package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rpggio/recipebox/internal/domain/identity"
)

// StatusFunc reports the process authentication status.
type StatusFunc func() identity.AuthStatus

// Options configures the HTTP router.
type Options struct {
	MCP    http.Handler
	Status StatusFunc
	// Auth, when set, guards the MCP endpoint.
	Auth   func(http.Handler) http.Handler
	Logger *slog.Logger
}

// NewRouter wires the MCP and health endpoints.
func NewRouter(opts Options) *http.ServeMux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	mcpHandler := opts.MCP
	if opts.Auth != nil {
		mcpHandler = opts.Auth(mcpHandler)
	}
	mcpHandler = SessionMiddleware(requestLogger(logger, mcpHandler))

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("GET /health", healthHandler(opts.Status))
	return router
}

// healthHandler reports ok once signed in and 503 with the status otherwise.
func healthHandler(status StatusFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		current := identity.StatusAuthenticated
		if status != nil {
			current = status()
		}
		if current != identity.StatusAuthenticated {
			http.Error(w, fmt.Sprintf("auth %s", current), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		sessionID, _ := SessionIDFromContext(r.Context())
		caller, _ := CallerFromContext(r.Context())
		logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "session_id", sessionID, "caller", caller, "duration", time.Since(start))
	})
}
