// AngelaMos | 2026
// server.go

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/promptacademy/platform-api/internal/config"
	"github.com/promptacademy/platform-api/internal/health"
	"github.com/promptacademy/platform-api/internal/middleware"
)

type Config struct {
	ServerConfig  config.ServerConfig
	CORSConfig    config.CORSConfig
	HealthHandler *health.Handler
	Logger        *slog.Logger
	Production    bool
	RateLimiter   func(http.Handler) http.Handler
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
	logger     *slog.Logger
}

func New(cfg Config) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(cfg.Production))
	r.Use(middleware.CORS(cfg.CORSConfig))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter)
	}
	r.Use(chimw.Timeout(cfg.ServerConfig.RequestTimeout))

	if cfg.HealthHandler != nil {
		r.Get("/livez", cfg.HealthHandler.Livez)
		r.Get("/readyz", cfg.HealthHandler.Readyz)
	}

	addr := fmt.Sprintf("%s:%d", cfg.ServerConfig.Host, cfg.ServerConfig.Port)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       cfg.ServerConfig.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.ServerConfig.WriteTimeout,
		IdleTimeout:       cfg.ServerConfig.IdleTimeout,
	}

	return &Server{
		httpServer: httpServer,
		router:     r,
		logger:     cfg.Logger,
	}
}

// Router exposes the chi router so route groups can be mounted
// before Start is called.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

// Shutdown waits drainDelay for load balancers to observe readiness
// failure, then drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context, drainDelay time.Duration) error {
	s.logger.Info("shutting down http server", "drain_delay", drainDelay)

	select {
	case <-time.After(drainDelay):
	case <-ctx.Done():
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("http server stopped")
	return nil
}
