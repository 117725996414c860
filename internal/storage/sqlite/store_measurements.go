package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lizardsystem/geodin/internal/geodin"
	"github.com/lizardsystem/geodin/internal/storage"
)

// PutItemType upserts a hierarchy type record by kind and slug.
func (s *Store) PutItemType(ctx context.Context, itemType geodin.ItemType) error {
	if err := s.ready(); err != nil {
		return err
	}
	itemType.Slug = strings.TrimSpace(itemType.Slug)
	if itemType.Slug == "" {
		return fmt.Errorf("item type slug is required")
	}
	if itemType.Kind == "" {
		return fmt.Errorf("item type kind is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO item_types (kind, slug, name, metadata_json, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(kind, slug) DO UPDATE SET
		    name = excluded.name,
		    metadata_json = excluded.metadata_json,
		    updated_at = excluded.updated_at`,
		string(itemType.Kind),
		itemType.Slug,
		itemType.Name,
		nullableJSON(itemType.Metadata),
		s.nowMillis(),
	)
	if err != nil {
		return fmt.Errorf("put item type: %w", err)
	}
	return nil
}

// GetItemType loads a hierarchy type record by kind and slug.
func (s *Store) GetItemType(ctx context.Context, kind geodin.ItemTypeKind, slug string) (geodin.ItemType, error) {
	if err := s.ready(); err != nil {
		return geodin.ItemType{}, err
	}

	var itemType geodin.ItemType
	var kindValue string
	var metadata []byte
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT kind, slug, name, metadata_json FROM item_types WHERE kind = ? AND slug = ?`,
		string(kind),
		strings.TrimSpace(slug),
	)
	if err := row.Scan(&kindValue, &itemType.Slug, &itemType.Name, &metadata); err != nil {
		if err == sql.ErrNoRows {
			return geodin.ItemType{}, storage.ErrNotFound
		}
		return geodin.ItemType{}, fmt.Errorf("get item type: %w", err)
	}
	itemType.Kind = geodin.ItemTypeKind(kindValue)
	itemType.Metadata = rawJSON(metadata)
	return itemType, nil
}

// UpsertMeasurement creates or updates the measurement for its
// project/location/investigation/data type combination.
func (s *Store) UpsertMeasurement(ctx context.Context, measurement geodin.Measurement) (geodin.Measurement, error) {
	if err := s.ready(); err != nil {
		return geodin.Measurement{}, err
	}
	measurement.ProjectSlug = strings.TrimSpace(measurement.ProjectSlug)
	if measurement.ProjectSlug == "" {
		return geodin.Measurement{}, fmt.Errorf("measurement project slug is required")
	}
	if measurement.LocationTypeSlug == "" || measurement.InvestigationTypeSlug == "" || measurement.DataTypeSlug == "" {
		return geodin.Measurement{}, fmt.Errorf("measurement type slugs are required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO measurements (
		    name, project_slug, supplier_slug, location_type_slug, investigation_type_slug, data_type_slug, metadata_json, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(project_slug, location_type_slug, investigation_type_slug, data_type_slug) DO UPDATE SET
		    name = excluded.name,
		    supplier_slug = excluded.supplier_slug,
		    metadata_json = excluded.metadata_json,
		    updated_at = excluded.updated_at`,
		measurement.Name,
		measurement.ProjectSlug,
		strings.TrimSpace(measurement.SupplierSlug),
		measurement.LocationTypeSlug,
		measurement.InvestigationTypeSlug,
		measurement.DataTypeSlug,
		nullableJSON(measurement.Metadata),
		s.nowMillis(),
	)
	if err != nil {
		return geodin.Measurement{}, fmt.Errorf("upsert measurement: %w", err)
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		measurementSelect+`
		 WHERE m.project_slug = ? AND m.location_type_slug = ? AND m.investigation_type_slug = ? AND m.data_type_slug = ?`,
		measurement.ProjectSlug,
		measurement.LocationTypeSlug,
		measurement.InvestigationTypeSlug,
		measurement.DataTypeSlug,
	)
	stored, err := scanMeasurement(row)
	if err != nil {
		return geodin.Measurement{}, fmt.Errorf("load upserted measurement: %w", err)
	}
	return stored, nil
}

// GetMeasurement loads one of a project's measurements by ID.
func (s *Store) GetMeasurement(ctx context.Context, projectSlug string, id int64) (geodin.Measurement, error) {
	if err := s.ready(); err != nil {
		return geodin.Measurement{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		measurementSelect+` WHERE m.project_slug = ? AND m.id = ?`,
		strings.TrimSpace(projectSlug),
		id,
	)
	measurement, err := scanMeasurement(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return geodin.Measurement{}, storage.ErrNotFound
		}
		return geodin.Measurement{}, fmt.Errorf("get measurement: %w", err)
	}
	return measurement, nil
}

// ListMeasurements returns all measurements with point counts, ordered by name.
func (s *Store) ListMeasurements(ctx context.Context) ([]geodin.Measurement, error) {
	return s.listMeasurements(ctx, measurementSelect+` ORDER BY m.name, m.id`)
}

// ListProjectMeasurements returns a project's measurements ordered by name.
func (s *Store) ListProjectMeasurements(ctx context.Context, projectSlug string) ([]geodin.Measurement, error) {
	return s.listMeasurements(
		ctx,
		measurementSelect+` WHERE m.project_slug = ? ORDER BY m.name, m.id`,
		strings.TrimSpace(projectSlug),
	)
}

// ListSupplierMeasurements returns a supplier's measurements ordered by name.
func (s *Store) ListSupplierMeasurements(ctx context.Context, supplierSlug string) ([]geodin.Measurement, error) {
	return s.listMeasurements(
		ctx,
		measurementSelect+` WHERE m.supplier_slug = ? ORDER BY m.name, m.id`,
		strings.TrimSpace(supplierSlug),
	)
}

// PutPoint upserts a point by slug.
func (s *Store) PutPoint(ctx context.Context, point geodin.Point) error {
	if err := s.ready(); err != nil {
		return err
	}
	point.Slug = strings.TrimSpace(point.Slug)
	if point.Slug == "" {
		return fmt.Errorf("point slug is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO points (slug, name, measurement_id, x, y, z, lon, lat, source_url, metadata_json, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
		    name = excluded.name,
		    measurement_id = excluded.measurement_id,
		    x = excluded.x,
		    y = excluded.y,
		    z = excluded.z,
		    lon = excluded.lon,
		    lat = excluded.lat,
		    source_url = excluded.source_url,
		    metadata_json = excluded.metadata_json,
		    updated_at = excluded.updated_at`,
		point.Slug,
		point.Name,
		point.MeasurementID,
		point.X,
		point.Y,
		point.Z,
		point.Lon,
		point.Lat,
		point.SourceURL,
		nullableJSON(point.Metadata),
		s.nowMillis(),
	)
	if err != nil {
		return fmt.Errorf("put point: %w", err)
	}
	return nil
}

// GetPoint loads a point by slug.
func (s *Store) GetPoint(ctx context.Context, slug string) (geodin.Point, error) {
	if err := s.ready(); err != nil {
		return geodin.Point{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		pointSelect+` WHERE slug = ?`,
		strings.TrimSpace(slug),
	)
	point, err := scanPoint(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return geodin.Point{}, storage.ErrNotFound
		}
		return geodin.Point{}, fmt.Errorf("get point: %w", err)
	}
	return point, nil
}

// ListMeasurementPoints returns a measurement's points ordered by name.
func (s *Store) ListMeasurementPoints(ctx context.Context, measurementID int64) ([]geodin.Point, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		pointSelect+` WHERE measurement_id = ? ORDER BY name, slug`,
		measurementID,
	)
	if err != nil {
		return nil, fmt.Errorf("list measurement points: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	points := make([]geodin.Point, 0)
	for rows.Next() {
		point, err := scanPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate points: %w", err)
	}
	return points, nil
}

const measurementSelect = `SELECT m.id, m.name, m.project_slug, m.supplier_slug, m.location_type_slug,
		m.investigation_type_slug, m.data_type_slug, m.metadata_json,
		(SELECT COUNT(*) FROM points p WHERE p.measurement_id = m.id) AS point_count
	 FROM measurements m`

const pointSelect = `SELECT slug, name, measurement_id, x, y, z, lon, lat, source_url, metadata_json FROM points`

func (s *Store) listMeasurements(ctx context.Context, query string, args ...any) ([]geodin.Measurement, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	measurements := make([]geodin.Measurement, 0)
	for rows.Next() {
		measurement, err := scanMeasurement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		measurements = append(measurements, measurement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate measurements: %w", err)
	}
	return measurements, nil
}

func scanMeasurement(row rowScanner) (geodin.Measurement, error) {
	var measurement geodin.Measurement
	var metadata []byte
	var pointCount int64
	if err := row.Scan(
		&measurement.ID,
		&measurement.Name,
		&measurement.ProjectSlug,
		&measurement.SupplierSlug,
		&measurement.LocationTypeSlug,
		&measurement.InvestigationTypeSlug,
		&measurement.DataTypeSlug,
		&metadata,
		&pointCount,
	); err != nil {
		return geodin.Measurement{}, err
	}
	measurement.Metadata = rawJSON(metadata)
	measurement.PointCount = int(pointCount)
	return measurement, nil
}

func scanPoint(row rowScanner) (geodin.Point, error) {
	var point geodin.Point
	var metadata []byte
	if err := row.Scan(
		&point.Slug,
		&point.Name,
		&point.MeasurementID,
		&point.X,
		&point.Y,
		&point.Z,
		&point.Lon,
		&point.Lat,
		&point.SourceURL,
		&metadata,
	); err != nil {
		return geodin.Point{}, err
	}
	point.Metadata = rawJSON(metadata)
	return point, nil
}
