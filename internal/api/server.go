// Package api exposes the operational HTTP surface of the scraper:
// health checks and Prometheus metrics.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server serves /healthz and /metrics while a crawl runs.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// New constructs a Server listening on the given port.
func New(port int, logger *zap.Logger) *Server {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the route tree for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves in the background and shuts down gracefully when ctx is
// canceled. Startup failures are logged, not fatal: metrics are a side
// channel and must never abort a crawl.
func (s *Server) Start(ctx context.Context) {
	go func() {
		s.logger.Info("Metrics server listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Warn("Metrics server stopped", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("Metrics server shutdown failed", zap.Error(err))
		}
	}()
}
