package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/alexiusacademia/gobearing/internal/config"
)

// Server exposes the bearing calculator over HTTP
type Server struct {
	cfg     config.Server
	logger  *zap.Logger
	metrics *Metrics
	limiter *RateLimiter
}

// New creates a server from resolved settings
func New(cfg config.Server, logger *zap.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: NewMetrics(),
		limiter: NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
	s.limiter.onLimit = s.metrics.limited.Inc
	return s
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/bearing", func(r chi.Router) {
		r.Use(s.limiter.Middleware)
		r.Get("/catalog", s.handleCatalog)
		r.Post("/calculate", s.handleCalculate)
		r.Post("/report", s.handleReport)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
