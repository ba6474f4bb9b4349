// Package web serves the upload, analysis and download endpoints.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/glclean/internal/config"
	"github.com/cleared-dev/glclean/internal/workbook"
)

// Server runs the pipeline for uploaded workbooks. Runs are serialized
// because they share one output directory.
type Server struct {
	cfg      *config.Config
	log      zerolog.Logger
	registry *workbook.Registry
	now      func() time.Time

	mu sync.Mutex
}

// NewServer creates a Server from cfg.
func NewServer(cfg *config.Config, log zerolog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		log:      log,
		registry: workbook.DefaultRegistry(),
		now:      time.Now,
	}
}

// Handler returns the routed handler wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", s.Upload)
	mux.HandleFunc("GET /api/financial-data", s.FinancialData)
	mux.HandleFunc("GET /api/files", s.Files)
	mux.HandleFunc("GET /download/{name}", s.Download)
	mux.HandleFunc("GET /health", s.Health)

	return Recovery(s.log)(
		RequestID(
			Logger(s.log)(
				CORS(mux),
			),
		),
	)
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening on %s: %w", s.cfg.Server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
