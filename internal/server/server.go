// Package server exposes the run-constrained search over HTTP with gin.
//
// Routes:
//
//	POST /v1/solve   one search
//	POST /v1/sweep   many starts, one end
//	GET  /v1/health  liveness
//	GET  /metrics    Prometheus exposition
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/crucible/internal/config"
	"github.com/katalvlaran/crucible/internal/store"
)

// shutdownGrace bounds how long Serve waits for in-flight requests.
const shutdownGrace = 10 * time.Second

// Server owns the HTTP router and its dependencies.
type Server struct {
	cfg    config.Config
	cache  *store.Store // nil disables caching
	logger *slog.Logger
	router *gin.Engine
}

// New builds a Server. cache may be nil.
func New(cfg config.Config, cache *store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	registerValidators()
	s := &Server{cfg: cfg, cache: cache, logger: logger}
	s.router = s.routes()

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(s.logger), limitBody(s.cfg.Server.MaxGridBytes))

	v1 := router.Group("/v1")
	v1.POST("/solve", s.handleSolve)
	v1.POST("/sweep", s.handleSweep)
	v1.GET("/health", s.handleHealth)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// Serve listens on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}
	s.logger.Info("http server stopped")

	return nil
}

// ListenAndServe is Serve on a TCP listener for the configured address.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Server.Addr, err)
	}

	return s.Serve(ctx, ln)
}
