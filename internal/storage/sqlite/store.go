package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lizardsystem/geodin/internal/geodin"
	"github.com/lizardsystem/geodin/internal/platform/storage/sqlitemigrate"
	"github.com/lizardsystem/geodin/internal/storage"
	"github.com/lizardsystem/geodin/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for imported Geodin data.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

// Open opens and migrates a Geodin SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, clock: time.Now}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutStartingPoint upserts an API starting point by slug.
func (s *Store) PutStartingPoint(ctx context.Context, point geodin.StartingPoint) error {
	if err := s.ready(); err != nil {
		return err
	}
	point.Slug = strings.TrimSpace(point.Slug)
	if point.Slug == "" {
		return fmt.Errorf("starting point slug is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO starting_points (slug, name, source_url, metadata_json, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
		    name = excluded.name,
		    source_url = excluded.source_url,
		    metadata_json = excluded.metadata_json,
		    updated_at = excluded.updated_at`,
		point.Slug,
		point.Name,
		point.SourceURL,
		nullableJSON(point.Metadata),
		s.nowMillis(),
	)
	if err != nil {
		return fmt.Errorf("put starting point: %w", err)
	}
	return nil
}

// GetStartingPoint loads an API starting point by slug.
func (s *Store) GetStartingPoint(ctx context.Context, slug string) (geodin.StartingPoint, error) {
	if err := s.ready(); err != nil {
		return geodin.StartingPoint{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT slug, name, source_url, metadata_json FROM starting_points WHERE slug = ?`,
		strings.TrimSpace(slug),
	)
	point, err := scanStartingPoint(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return geodin.StartingPoint{}, storage.ErrNotFound
		}
		return geodin.StartingPoint{}, fmt.Errorf("get starting point: %w", err)
	}
	return point, nil
}

// ListStartingPoints returns all API starting points ordered by name.
func (s *Store) ListStartingPoints(ctx context.Context) ([]geodin.StartingPoint, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT slug, name, source_url, metadata_json FROM starting_points ORDER BY name, slug`,
	)
	if err != nil {
		return nil, fmt.Errorf("list starting points: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	points := make([]geodin.StartingPoint, 0)
	for rows.Next() {
		point, err := scanStartingPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan starting point: %w", err)
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate starting points: %w", err)
	}
	return points, nil
}

// PutProject upserts a project by slug.
func (s *Store) PutProject(ctx context.Context, project geodin.Project) error {
	if err := s.ready(); err != nil {
		return err
	}
	project.Slug = strings.TrimSpace(project.Slug)
	if project.Slug == "" {
		return fmt.Errorf("project slug is required")
	}

	hierarchyJSON, err := marshalHierarchy(project.Hierarchy)
	if err != nil {
		return fmt.Errorf("encode project hierarchy: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO projects (slug, name, source_url, starting_point_slug, active, metadata_json, hierarchy_json, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
		    name = excluded.name,
		    source_url = excluded.source_url,
		    starting_point_slug = excluded.starting_point_slug,
		    active = excluded.active,
		    metadata_json = excluded.metadata_json,
		    hierarchy_json = excluded.hierarchy_json,
		    updated_at = excluded.updated_at`,
		project.Slug,
		project.Name,
		project.SourceURL,
		strings.TrimSpace(project.StartingPointSlug),
		boolToInt(project.Active),
		nullableJSON(project.Metadata),
		hierarchyJSON,
		s.nowMillis(),
	)
	if err != nil {
		return fmt.Errorf("put project: %w", err)
	}
	return nil
}

// GetProject loads a project by slug.
func (s *Store) GetProject(ctx context.Context, slug string) (geodin.Project, error) {
	if err := s.ready(); err != nil {
		return geodin.Project{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT slug, name, source_url, starting_point_slug, active, metadata_json, hierarchy_json
		 FROM projects WHERE slug = ?`,
		strings.TrimSpace(slug),
	)
	project, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return geodin.Project{}, storage.ErrNotFound
		}
		return geodin.Project{}, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

// ListProjects returns all projects ordered active-first, then by name.
func (s *Store) ListProjects(ctx context.Context) ([]geodin.Project, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT slug, name, source_url, starting_point_slug, active, metadata_json, hierarchy_json
		 FROM projects ORDER BY active DESC, name, slug`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	projects := make([]geodin.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// DeactivateProjectsExcept marks the starting point's projects not named in
// keep as inactive.
func (s *Store) DeactivateProjectsExcept(ctx context.Context, startingPointSlug string, keep []string) (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	startingPointSlug = strings.TrimSpace(startingPointSlug)
	if startingPointSlug == "" {
		return 0, fmt.Errorf("starting point slug is required")
	}

	query := `UPDATE projects SET active = 0 WHERE starting_point_slug = ? AND active = 1`
	args := []any{startingPointSlug}
	if len(keep) > 0 {
		query += ` AND slug NOT IN (` + placeholders(len(keep)) + `)`
		for _, slug := range keep {
			args = append(args, slug)
		}
	}

	result, err := s.sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deactivate projects: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deactivated projects: %w", err)
	}
	return int(affected), nil
}

// PutSupplier upserts a supplier by slug.
func (s *Store) PutSupplier(ctx context.Context, supplier geodin.Supplier) error {
	if err := s.ready(); err != nil {
		return err
	}
	supplier.Slug = strings.TrimSpace(supplier.Slug)
	if supplier.Slug == "" {
		return fmt.Errorf("supplier slug is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO suppliers (slug, name, html_color, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
		    name = excluded.name,
		    html_color = excluded.html_color,
		    updated_at = excluded.updated_at`,
		supplier.Slug,
		supplier.Name,
		supplier.HTMLColor,
		s.nowMillis(),
	)
	if err != nil {
		return fmt.Errorf("put supplier: %w", err)
	}
	return nil
}

// GetSupplier loads a supplier by slug.
func (s *Store) GetSupplier(ctx context.Context, slug string) (geodin.Supplier, error) {
	if err := s.ready(); err != nil {
		return geodin.Supplier{}, err
	}

	var supplier geodin.Supplier
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT slug, name, html_color FROM suppliers WHERE slug = ?`,
		strings.TrimSpace(slug),
	)
	if err := row.Scan(&supplier.Slug, &supplier.Name, &supplier.HTMLColor); err != nil {
		if err == sql.ErrNoRows {
			return geodin.Supplier{}, storage.ErrNotFound
		}
		return geodin.Supplier{}, fmt.Errorf("get supplier: %w", err)
	}
	return supplier, nil
}

// ListSuppliers returns all suppliers ordered by name.
func (s *Store) ListSuppliers(ctx context.Context) ([]geodin.Supplier, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT slug, name, html_color FROM suppliers ORDER BY name, slug`,
	)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	suppliers := make([]geodin.Supplier, 0)
	for rows.Next() {
		var supplier geodin.Supplier
		if err := rows.Scan(&supplier.Slug, &supplier.Name, &supplier.HTMLColor); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *Store) ready() error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) nowMillis() int64 {
	now := time.Now
	if s.clock != nil {
		now = s.clock
	}
	return now().UTC().UnixMilli()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStartingPoint(row rowScanner) (geodin.StartingPoint, error) {
	var point geodin.StartingPoint
	var metadata []byte
	if err := row.Scan(&point.Slug, &point.Name, &point.SourceURL, &metadata); err != nil {
		return geodin.StartingPoint{}, err
	}
	point.Metadata = rawJSON(metadata)
	return point, nil
}

func scanProject(row rowScanner) (geodin.Project, error) {
	var project geodin.Project
	var active int64
	var metadata []byte
	var hierarchy []byte
	if err := row.Scan(
		&project.Slug,
		&project.Name,
		&project.SourceURL,
		&project.StartingPointSlug,
		&active,
		&metadata,
		&hierarchy,
	); err != nil {
		return geodin.Project{}, err
	}
	project.Active = active != 0
	project.Metadata = rawJSON(metadata)
	if len(hierarchy) > 0 {
		if err := json.Unmarshal(hierarchy, &project.Hierarchy); err != nil {
			return geodin.Project{}, fmt.Errorf("decode project hierarchy: %w", err)
		}
	}
	return project, nil
}

func marshalHierarchy(hierarchy []geodin.HierarchyLocation) ([]byte, error) {
	if len(hierarchy) == 0 {
		return nil, nil
	}
	return json.Marshal(hierarchy)
}

func nullableJSON(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

func rawJSON(value []byte) json.RawMessage {
	if len(value) == 0 {
		return nil
	}
	return json.RawMessage(value)
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func placeholders(count int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", count), ", ")
}

var _ storage.Store = (*Store)(nil)
