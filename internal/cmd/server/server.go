// Package server wires configuration and dependencies for the web process.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/lizardsystem/geodin/internal/platform/config"
	"github.com/lizardsystem/geodin/internal/platform/otel"
	"github.com/lizardsystem/geodin/internal/platform/timeouts"
	"github.com/lizardsystem/geodin/internal/storage/sqlite"
	"github.com/lizardsystem/geodin/internal/syncer"
	"github.com/lizardsystem/geodin/internal/web"
)

// Config holds the server command configuration. Environment values are
// defaults; flags override them.
type Config struct {
	HTTPAddr string `env:"GEODIN_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath   string `env:"GEODIN_DB_PATH" envDefault:"geodin.db"`
}

// ParseConfig parses environment variables and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run serves the site until the context ends.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "geodin-server")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	server, err := web.NewServer(web.Config{
		HTTPAddr: cfg.HTTPAddr,
		Store:    store,
		Fetcher:  syncer.NewClient(),
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
