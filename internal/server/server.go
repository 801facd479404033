// Package server exposes the audit engine over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/config"
	"github.com/vizlens/vizlens/internal/server/handlers"
	servermw "github.com/vizlens/vizlens/internal/server/middleware"
)

// Audit runs block for the full probe cycle, so the write timeout must
// stay generous.
const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 10 * time.Minute
	defaultIdleTimeout  = 120 * time.Second
)

// Server is the HTTP front end.
type Server struct {
	router *chi.Mux
	server *http.Server
	cfg    config.ServerConfig
	logger *zap.Logger
}

// New builds the router and wires middleware in order: RequestID for
// correlation, then logging, then recovery closest to the handlers.
func New(cfg config.ServerConfig, audit *handlers.AuditHandler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(servermw.RequestID)
	r.Use(servermw.Logging(logger))
	r.Use(servermw.Recovery(logger))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeEnvelope(w, http.StatusNotFound, "The requested resource was not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeEnvelope(w, http.StatusMethodNotAllowed, "The requested method is not allowed for this resource")
	})

	s := &Server{router: r, cfg: cfg, logger: logger}
	s.registerRoutes(audit)
	return s
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  timeoutOr(s.cfg.ReadTimeout, defaultReadTimeout),
		WriteTimeout: timeoutOr(s.cfg.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:  timeoutOr(s.cfg.IdleTimeout, defaultIdleTimeout),
	}

	s.logger.Info("starting HTTP server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func timeoutOr(value, fallback time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return fallback
}

func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"success":false,"message":%q}`+"\n", message)
}
