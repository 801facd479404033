package server

import (
	"github.com/vizlens/vizlens/internal/server/handlers"
)

func (s *Server) registerRoutes(audit *handlers.AuditHandler) {
	s.router.Get("/health", handlers.HealthHandler)
	s.router.Get("/version", handlers.VersionHandler)

	if audit != nil {
		s.router.Post("/api/audit", audit.ServeHTTP)
	}
}
