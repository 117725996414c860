package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lizardsystem/geodin/internal/coords"
	"github.com/lizardsystem/geodin/internal/geodin"
	"github.com/lizardsystem/geodin/internal/storage"
	"github.com/lizardsystem/geodin/internal/telemetry"
)

// Store is the persistence surface the syncer writes through.
type Store interface {
	storage.StartingPointStore
	storage.ProjectStore
	storage.SupplierStore
	storage.ItemTypeStore
	storage.MeasurementStore
	storage.PointStore
}

// Syncer copies the Geodin hierarchy into the local store.
type Syncer struct {
	store   Store
	fetcher Fetcher
	emitter *telemetry.Emitter
	tracer  trace.Tracer
}

// New creates a syncer. The emitter may be nil.
func New(store Store, fetcher Fetcher, emitter *telemetry.Emitter) *Syncer {
	return &Syncer{
		store:   store,
		fetcher: fetcher,
		emitter: emitter,
		tracer:  otel.Tracer("geodin/sync"),
	}
}

// StartingPointReport summarizes one starting point reload.
type StartingPointReport struct {
	StartingPointSlug string
	Created           int
	Updated           int
	Deactivated       int
}

// ProjectReport summarizes one project reload.
type ProjectReport struct {
	ProjectSlug        string
	LocationTypes      int
	InvestigationTypes int
	DataTypes          int
	Measurements       int
	Points             int
}

// ReloadStartingPoint refreshes the project list of one starting point.
//
// Projects seen for the first time are created inactive so an operator can
// review them before they show up publicly. Projects the starting point no
// longer lists are deactivated, never deleted.
func (s *Syncer) ReloadStartingPoint(ctx context.Context, slug string) (StartingPointReport, error) {
	ctx, span := s.tracer.Start(ctx, "sync.ReloadStartingPoint",
		trace.WithAttributes(attribute.String("starting_point.slug", slug)))
	defer span.End()

	report := StartingPointReport{StartingPointSlug: slug}

	startingPoint, err := s.store.GetStartingPoint(ctx, slug)
	if err != nil {
		return report, fmt.Errorf("load starting point %s: %w", slug, err)
	}

	var listed []ProjectPayload
	if err := s.fetcher.FetchJSON(ctx, startingPoint.SourceURL, &listed); err != nil {
		s.emitError(ctx, "reload_starting_point", slug, err)
		return report, fmt.Errorf("fetch project list for %s: %w", slug, err)
	}

	keep := make([]string, 0, len(listed))
	for _, payload := range listed {
		projectSlug := payloadSlug(payload.ID, payload.Name)
		if projectSlug == "" {
			continue
		}
		keep = append(keep, projectSlug)

		existing, err := s.store.GetProject(ctx, projectSlug)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			project := geodin.Project{
				Slug:              projectSlug,
				Name:              payload.Name,
				SourceURL:         payload.URL,
				StartingPointSlug: slug,
				Active:            false,
			}
			if err := s.store.PutProject(ctx, project); err != nil {
				return report, fmt.Errorf("create project %s: %w", projectSlug, err)
			}
			report.Created++
		case err != nil:
			return report, fmt.Errorf("load project %s: %w", projectSlug, err)
		default:
			existing.Name = payload.Name
			existing.SourceURL = payload.URL
			existing.StartingPointSlug = slug
			if err := s.store.PutProject(ctx, existing); err != nil {
				return report, fmt.Errorf("update project %s: %w", projectSlug, err)
			}
			report.Updated++
		}
	}

	deactivated, err := s.store.DeactivateProjectsExcept(ctx, slug, keep)
	if err != nil {
		return report, fmt.Errorf("deactivate vanished projects of %s: %w", slug, err)
	}
	report.Deactivated = deactivated

	s.emitInfo(ctx, "reload_starting_point", slug,
		fmt.Sprintf("%d created, %d updated, %d deactivated",
			report.Created, report.Updated, report.Deactivated))
	return report, nil
}

// ReloadProject refreshes one project's hierarchy, measurements and points.
func (s *Syncer) ReloadProject(ctx context.Context, slug string) (ProjectReport, error) {
	ctx, span := s.tracer.Start(ctx, "sync.ReloadProject",
		trace.WithAttributes(attribute.String("project.slug", slug)))
	defer span.End()

	report := ProjectReport{ProjectSlug: slug}

	project, err := s.store.GetProject(ctx, slug)
	if err != nil {
		return report, fmt.Errorf("load project %s: %w", slug, err)
	}
	if project.SourceURL == "" {
		return report, fmt.Errorf("project %s has no source url", slug)
	}

	var locationTypes []LocationTypePayload
	if err := s.fetcher.FetchJSON(ctx, project.SourceURL, &locationTypes); err != nil {
		s.emitError(ctx, "reload_project", slug, err)
		return report, fmt.Errorf("fetch hierarchy for %s: %w", slug, err)
	}

	// Geodin repeats the same type across hierarchy branches; each slug is
	// stored once per reload.
	handled := map[string]bool{}

	hierarchy := make([]geodin.HierarchyLocation, 0, len(locationTypes))
	for _, location := range locationTypes {
		locationSlug, err := s.putItemType(ctx, handled, geodin.KindLocationType, location.ID, location.Name, nil)
		if err != nil {
			return report, err
		}
		report.LocationTypes++

		hierarchyLocation := geodin.HierarchyLocation{Name: location.Name}
		for _, investigation := range location.InvestigationTypes {
			investigationSlug, err := s.putItemType(ctx, handled, geodin.KindInvestigationType,
				investigation.ID, investigation.Name, nil)
			if err != nil {
				return report, err
			}
			report.InvestigationTypes++

			hierarchyInvestigation := geodin.HierarchyInvestigation{Name: investigation.Name}
			for _, dataType := range investigation.DataTypes {
				dataTypeSlug, err := s.putItemType(ctx, handled, geodin.KindDataType,
					dataType.ID, dataType.Name, dataType.Fields)
				if err != nil {
					return report, err
				}
				report.DataTypes++

				hierarchyDataType := geodin.HierarchyDataType{Name: dataType.Name}
				if len(dataType.Points) > 0 {
					measurement, err := s.putMeasurement(ctx, project,
						location, investigation, dataType,
						locationSlug, investigationSlug, dataTypeSlug)
					if err != nil {
						return report, err
					}
					report.Measurements++
					report.Points += len(dataType.Points)
					hierarchyDataType.MeasurementID = measurement.ID
				}
				hierarchyInvestigation.DataTypes = append(hierarchyInvestigation.DataTypes, hierarchyDataType)
			}
			hierarchyLocation.Investigations = append(hierarchyLocation.Investigations, hierarchyInvestigation)
		}
		hierarchy = append(hierarchy, hierarchyLocation)
	}

	project.Hierarchy = hierarchy
	if err := s.store.PutProject(ctx, project); err != nil {
		return report, fmt.Errorf("store hierarchy for %s: %w", slug, err)
	}

	s.emitInfo(ctx, "reload_project", slug,
		fmt.Sprintf("%d measurements, %d points", report.Measurements, report.Points))
	return report, nil
}

func (s *Syncer) putItemType(ctx context.Context, handled map[string]bool,
	kind geodin.ItemTypeKind, id, name string, fields []string) (string, error) {
	slug := payloadSlug(id, name)
	if slug == "" {
		return "", fmt.Errorf("%s type without id or name", kind)
	}
	key := string(kind) + "/" + slug
	if handled[key] {
		return slug, nil
	}
	handled[key] = true

	itemType := geodin.ItemType{Kind: kind, Slug: slug, Name: name}
	if len(fields) > 0 {
		metadata, err := json.Marshal(map[string]any{"fields": fields})
		if err != nil {
			return "", fmt.Errorf("encode fields of %s type %s: %w", kind, slug, err)
		}
		itemType.Metadata = metadata
	}
	if err := s.store.PutItemType(ctx, itemType); err != nil {
		return "", fmt.Errorf("store %s type %s: %w", kind, slug, err)
	}
	return slug, nil
}

func (s *Syncer) putMeasurement(ctx context.Context, project geodin.Project,
	location LocationTypePayload, investigation InvestigationTypePayload,
	dataType DataTypePayload,
	locationSlug, investigationSlug, dataTypeSlug string) (geodin.Measurement, error) {

	supplierSlug, err := s.putSupplier(ctx, dataType.Points)
	if err != nil {
		return geodin.Measurement{}, err
	}

	measurement := geodin.Measurement{
		Name: strings.Join([]string{
			project.Name, location.Name, investigation.Name, dataType.Name,
		}, ", "),
		ProjectSlug:           project.Slug,
		SupplierSlug:          supplierSlug,
		LocationTypeSlug:      locationSlug,
		InvestigationTypeSlug: investigationSlug,
		DataTypeSlug:          dataTypeSlug,
	}
	stored, err := s.store.UpsertMeasurement(ctx, measurement)
	if err != nil {
		return geodin.Measurement{}, fmt.Errorf("store measurement %q: %w", measurement.Name, err)
	}

	for _, payload := range dataType.Points {
		point, err := pointFromPayload(payload, stored.ID)
		if err != nil {
			return geodin.Measurement{}, fmt.Errorf("measurement %q: %w", measurement.Name, err)
		}
		if err := s.store.PutPoint(ctx, point); err != nil {
			return geodin.Measurement{}, fmt.Errorf("store point %s: %w", point.Slug, err)
		}
	}
	return stored, nil
}

// putSupplier derives the supplier from the first point that names one and
// ensures a supplier record exists. The HTML color is administrative state
// and survives resyncs.
func (s *Syncer) putSupplier(ctx context.Context, points []PointPayload) (string, error) {
	var name string
	for _, point := range points {
		if name = point.SupplierName(); name != "" {
			break
		}
	}
	if name == "" {
		return "", nil
	}

	slug := geodin.Slugify(name)
	_, err := s.store.GetSupplier(ctx, slug)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		if err := s.store.PutSupplier(ctx, geodin.Supplier{Slug: slug, Name: name}); err != nil {
			return "", fmt.Errorf("create supplier %s: %w", slug, err)
		}
	case err != nil:
		return "", fmt.Errorf("load supplier %s: %w", slug, err)
	}
	return slug, nil
}

func pointFromPayload(payload PointPayload, measurementID int64) (geodin.Point, error) {
	slug := payloadSlug(payload.ID, payload.Name)
	if slug == "" {
		return geodin.Point{}, fmt.Errorf("point without id or name")
	}

	lon, lat := coords.RDToWGS84(payload.X, payload.Y)
	point := geodin.Point{
		Slug:          slug,
		Name:          payload.Name,
		MeasurementID: measurementID,
		X:             payload.X,
		Y:             payload.Y,
		Z:             payload.Z,
		Lon:           lon,
		Lat:           lat,
		SourceURL:     payload.URL,
	}
	if len(payload.Extra) > 0 {
		metadata, err := json.Marshal(payload.Extra)
		if err != nil {
			return geodin.Point{}, fmt.Errorf("encode metadata of point %s: %w", slug, err)
		}
		point.Metadata = metadata
	}
	return point, nil
}

// payloadSlug prefers Geodin's own Id over a slug derived from the name, so
// renames upstream keep pointing at the same local record.
func payloadSlug(id, name string) string {
	if slug := geodin.Slugify(id); slug != "" {
		return slug
	}
	return geodin.Slugify(name)
}

func (s *Syncer) emitInfo(ctx context.Context, operation, subject, detail string) {
	_ = s.emitter.Emit(ctx, storage.TelemetryEvent{
		Severity:  telemetry.SeverityInfo,
		Operation: operation,
		Subject:   subject,
		Detail:    detail,
	})
}

func (s *Syncer) emitError(ctx context.Context, operation, subject string, err error) {
	_ = s.emitter.Emit(ctx, storage.TelemetryEvent{
		Severity:  telemetry.SeverityError,
		Operation: operation,
		Subject:   subject,
		Detail:    err.Error(),
	})
}
