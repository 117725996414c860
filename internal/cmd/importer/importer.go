// Package importer wires configuration and dependencies for the sync
// command.
package importer

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/lizardsystem/geodin/internal/geodin"
	"github.com/lizardsystem/geodin/internal/platform/config"
	"github.com/lizardsystem/geodin/internal/platform/otel"
	"github.com/lizardsystem/geodin/internal/platform/timeouts"
	"github.com/lizardsystem/geodin/internal/storage/sqlite"
	"github.com/lizardsystem/geodin/internal/syncer"
	"github.com/lizardsystem/geodin/internal/telemetry"
)

// Config holds the importer command configuration. Environment values are
// defaults; flags override them.
type Config struct {
	DBPath string `env:"GEODIN_DB_PATH" envDefault:"geodin.db"`

	// RegisterName and RegisterURL add an API starting point before syncing.
	RegisterName string
	RegisterURL  string
	// StartingPoint limits the sync to one starting point's project list.
	StartingPoint string
	// Project limits the sync to one project's hierarchy.
	Project string
}

// ParseConfig parses environment variables and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.RegisterName, "register-name", "", "register an API starting point with this name")
	fs.StringVar(&cfg.RegisterURL, "register-url", "", "source URL for the registered starting point")
	fs.StringVar(&cfg.StartingPoint, "starting-point", "", "sync only this starting point's project list")
	fs.StringVar(&cfg.Project, "project", "", "sync only this project's hierarchy")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.RegisterName != "" && cfg.RegisterURL == "" {
		return Config{}, errors.New("-register-name requires -register-url")
	}
	return cfg, nil
}

// Run performs the requested sync. Without a scope flag it refreshes every
// starting point and every active project.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "geodin-importer")
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

	if cfg.RegisterName != "" {
		point := geodin.StartingPoint{
			Slug:      geodin.Slugify(cfg.RegisterName),
			Name:      cfg.RegisterName,
			SourceURL: cfg.RegisterURL,
		}
		if err := store.PutStartingPoint(ctx, point); err != nil {
			return fmt.Errorf("register starting point: %w", err)
		}
		log.Printf("registered starting point %s", point.Slug)
	}

	s := syncer.New(store, syncer.NewClient(), telemetry.NewEmitter(store))

	switch {
	case cfg.Project != "":
		return reloadProject(ctx, s, cfg.Project)
	case cfg.StartingPoint != "":
		return reloadStartingPoint(ctx, s, cfg.StartingPoint)
	default:
		return reloadAll(ctx, store, s)
	}
}

func reloadStartingPoint(ctx context.Context, s *syncer.Syncer, slug string) error {
	report, err := s.ReloadStartingPoint(ctx, slug)
	if err != nil {
		return err
	}
	log.Printf("starting point %s: %d created, %d updated, %d deactivated",
		report.StartingPointSlug, report.Created, report.Updated, report.Deactivated)
	return nil
}

func reloadProject(ctx context.Context, s *syncer.Syncer, slug string) error {
	report, err := s.ReloadProject(ctx, slug)
	if err != nil {
		return err
	}
	log.Printf("project %s: %d measurements, %d points",
		report.ProjectSlug, report.Measurements, report.Points)
	return nil
}

func reloadAll(ctx context.Context, store *sqlite.Store, s *syncer.Syncer) error {
	startingPoints, err := store.ListStartingPoints(ctx)
	if err != nil {
		return fmt.Errorf("list starting points: %w", err)
	}
	for _, point := range startingPoints {
		if err := reloadStartingPoint(ctx, s, point.Slug); err != nil {
			return err
		}
	}

	projects, err := store.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	for _, project := range projects {
		if !project.Active || project.SourceURL == "" {
			continue
		}
		if err := reloadProject(ctx, s, project.Slug); err != nil {
			return err
		}
	}
	return nil
}
