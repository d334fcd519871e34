// Package api exposes the Ground Truth Studio services over a JSON REST API.
// Errors are returned as {"detail": "..."} envelopes, mirroring what the CLI
// client expects.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gtstudio/internal/logging"
	"github.com/dmitrijs2005/gtstudio/internal/server/generation"
	"github.com/dmitrijs2005/gtstudio/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address     string
	corsOrigins []string
	logger      logging.Logger
	users       *services.UserService
	collections *services.CollectionService
	retrieval   *services.RetrievalService
	generator   generation.Generator
}

// NewServer assembles the transport layer. corsOrigins may be empty, in which
// case any origin is accepted.
func NewServer(address string, corsOrigins []string, logger logging.Logger, us *services.UserService,
	cs *services.CollectionService, rs *services.RetrievalService, g generation.Generator) *Server {
	return &Server{
		address:     address,
		corsOrigins: corsOrigins,
		logger:      logger.With("module", "api_server"),
		users:       us,
		collections: cs,
		retrieval:   rs,
		generator:   g,
	}
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "Shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
