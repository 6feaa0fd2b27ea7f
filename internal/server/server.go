package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shubhamkumaar/socioBuy-backend/internal/config"
)

// Server owns the HTTP listener for the social-proof API and its graceful
// shutdown. Routing, auth and the suggest integration live behind the
// handler passed to New; the Server itself only manages the listener.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New wires the router into an http.Server with the configured timeouts.
// ReadHeaderTimeout stays fixed: every endpoint speaks small JSON bodies.
func New(logger *slog.Logger, cfg config.HTTPConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks serving traffic until Shutdown is called or the listener
// fails. A closed-server error is a normal shutdown, not a failure.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
