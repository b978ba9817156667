// Package api Larder REST API
//
// @title           Larder REST API
// @version         1.0.0
// @description     This is the REST API for Larder, a durable bakery inventory store.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Router builds the HTTP routing tree with all middleware applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(requestLogMiddleware(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", s.metrics.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		// Health check
		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Product operations
		r.Post("/products", s.metrics.InstrumentHandler("POST", "/api/v1/products", s.handleCreateProduct))
		r.Get("/products/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/products/{id}", s.handleGetProduct))
		r.Put("/products/{id}", s.metrics.InstrumentHandler("PUT", "/api/v1/products/{id}", s.handleUpdateProduct))
		r.Delete("/products/{id}", s.metrics.InstrumentHandler("DELETE", "/api/v1/products/{id}", s.handleDeleteProduct))

		// Stock operations
		r.Get("/products/{id}/stock", s.metrics.InstrumentHandler("GET", "/api/v1/products/{id}/stock", s.handleGetStock))
		r.Post("/products/{id}/restock", s.metrics.InstrumentHandler("POST", "/api/v1/products/{id}/restock", s.handleRestock))
		r.Post("/products/{id}/offload", s.metrics.InstrumentHandler("POST", "/api/v1/products/{id}/offload", s.handleOffload))

		// Diagnostics
		r.Get("/stats", s.metrics.InstrumentHandler("GET", "/api/v1/stats", s.handleStats))
	})

	return r
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Bind, s.config.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.WithField("addr", addr).Info("http server starting")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("http server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		s.runMetricsUpdater(ctx)
		return nil
	})

	return g.Wait()
}

// runMetricsUpdater refreshes the catalog size gauge until ctx is done.
func (s *Server) runMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := s.service.Count()
			if err != nil {
				s.logger.WithError(err).Warn("failed to refresh product count")
				continue
			}
			s.metrics.UpdateProductCount(count)
		}
	}
}
