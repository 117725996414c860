// Package web serves the public Geodin pages.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/lizardsystem/geodin/internal/platform/timeouts"
	"github.com/lizardsystem/geodin/internal/syncer"
	"github.com/lizardsystem/geodin/internal/web/routepath"
)

// Config holds the web server configuration.
type Config struct {
	HTTPAddr string
	Store    Store
	Fetcher  syncer.Fetcher
}

// Server runs the HTTP surface of the site.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the route mux for the site.
func NewHandler(store Store, fetcher syncer.Fetcher) (http.Handler, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}

	h := handlers{store: store, fetcher: fetcher}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleOverview)
	mux.HandleFunc("GET "+routepath.ProjectPattern, h.handleProject)
	mux.HandleFunc("GET "+routepath.ProjectMeasurementPattern, h.handleMeasurement)
	mux.HandleFunc("GET "+routepath.SupplierPattern, h.handleSupplier)
	mux.HandleFunc("GET "+routepath.PointTimeseriesPattern, h.handlePointTimeseries)
	mux.HandleFunc(routepath.Health, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("/", h.notFound)
	return mux, nil
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config.Store, config.Fetcher)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests are
// drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
