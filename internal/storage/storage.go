package storage

import (
	"context"
	"errors"
	"time"

	"github.com/lizardsystem/geodin/internal/geodin"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// StartingPointStore persists API starting point records.
type StartingPointStore interface {
	PutStartingPoint(ctx context.Context, point geodin.StartingPoint) error
	GetStartingPoint(ctx context.Context, slug string) (geodin.StartingPoint, error)
	ListStartingPoints(ctx context.Context) ([]geodin.StartingPoint, error)
}

// ProjectStore persists project records.
type ProjectStore interface {
	PutProject(ctx context.Context, project geodin.Project) error
	GetProject(ctx context.Context, slug string) (geodin.Project, error)
	// ListProjects returns all projects ordered active-first, then by name.
	ListProjects(ctx context.Context) ([]geodin.Project, error)
	// DeactivateProjectsExcept marks every project owned by the starting
	// point and not named in keep as inactive. It returns the number of
	// deactivated projects.
	DeactivateProjectsExcept(ctx context.Context, startingPointSlug string, keep []string) (int, error)
}

// SupplierStore persists supplier records.
type SupplierStore interface {
	PutSupplier(ctx context.Context, supplier geodin.Supplier) error
	GetSupplier(ctx context.Context, slug string) (geodin.Supplier, error)
	ListSuppliers(ctx context.Context) ([]geodin.Supplier, error)
}

// ItemTypeStore persists location, investigation and data type records.
type ItemTypeStore interface {
	PutItemType(ctx context.Context, itemType geodin.ItemType) error
	GetItemType(ctx context.Context, kind geodin.ItemTypeKind, slug string) (geodin.ItemType, error)
}

// MeasurementStore persists measurement records.
type MeasurementStore interface {
	// UpsertMeasurement creates or updates the measurement identified by its
	// project/location/investigation/data type combination and returns the
	// stored record with its ID set.
	UpsertMeasurement(ctx context.Context, measurement geodin.Measurement) (geodin.Measurement, error)
	GetMeasurement(ctx context.Context, projectSlug string, id int64) (geodin.Measurement, error)
	// ListMeasurements returns all measurements with point counts, ordered
	// by name.
	ListMeasurements(ctx context.Context) ([]geodin.Measurement, error)
	ListProjectMeasurements(ctx context.Context, projectSlug string) ([]geodin.Measurement, error)
	ListSupplierMeasurements(ctx context.Context, supplierSlug string) ([]geodin.Measurement, error)
}

// PointStore persists point records.
type PointStore interface {
	PutPoint(ctx context.Context, point geodin.Point) error
	GetPoint(ctx context.Context, slug string) (geodin.Point, error)
	ListMeasurementPoints(ctx context.Context, measurementID int64) ([]geodin.Point, error)
}

// TelemetryEvent records one operational event, such as a sync run.
type TelemetryEvent struct {
	Timestamp time.Time
	Severity  string
	Operation string
	Subject   string
	Detail    string
}

// TelemetryStore appends operational telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, event TelemetryEvent) error
	ListTelemetryEvents(ctx context.Context, limit int) ([]TelemetryEvent, error)
}

// Store combines all persistence interfaces backed by one database.
type Store interface {
	StartingPointStore
	ProjectStore
	SupplierStore
	ItemTypeStore
	MeasurementStore
	PointStore
	TelemetryStore
	Close() error
}
