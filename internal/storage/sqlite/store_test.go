package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lizardsystem/geodin/internal/geodin"
	"github.com/lizardsystem/geodin/internal/storage"
	_ "modernc.org/sqlite"
)

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenRunsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geodin.db")
	openTestStore(t, path)

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	assertTableExists(t, sqlDB, "starting_points")
	assertTableExists(t, sqlDB, "projects")
	assertTableExists(t, sqlDB, "suppliers")
	assertTableExists(t, sqlDB, "item_types")
	assertTableExists(t, sqlDB, "measurements")
	assertTableExists(t, sqlDB, "points")
	assertTableExists(t, sqlDB, "telemetry_events")
}

func TestStartingPointRoundTrip(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "geodin.db"))
	ctx := context.Background()

	point := geodin.StartingPoint{
		Slug:      "geodin-main",
		Name:      "Geodin main API",
		SourceURL: "http://geodin.example.com/api/projects",
		Metadata:  json.RawMessage(`{"Version":"2"}`),
	}
	if err := store.PutStartingPoint(ctx, point); err != nil {
		t.Fatalf("put starting point: %v", err)
	}

	stored, err := store.GetStartingPoint(ctx, "geodin-main")
	if err != nil {
		t.Fatalf("get starting point: %v", err)
	}
	if stored.Name != point.Name {
		t.Fatalf("name = %q, want %q", stored.Name, point.Name)
	}
	if stored.SourceURL != point.SourceURL {
		t.Fatalf("source url = %q, want %q", stored.SourceURL, point.SourceURL)
	}
	if string(stored.Metadata) != `{"Version":"2"}` {
		t.Fatalf("metadata = %s", stored.Metadata)
	}

	if _, err := store.GetStartingPoint(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListProjectsOrdersActiveFirst(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "geodin.db"))
	ctx := context.Background()

	projects := []geodin.Project{
		{Slug: "zz", Name: "Zz dike", Active: true},
		{Slug: "aa", Name: "Aa quay", Active: false},
		{Slug: "mm", Name: "Mm tunnel", Active: true},
	}
	for _, project := range projects {
		if err := store.PutProject(ctx, project); err != nil {
			t.Fatalf("put project %s: %v", project.Slug, err)
		}
	}

	listed, err := store.ListProjects(ctx)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(listed))
	}
	order := []string{"mm", "zz", "aa"}
	for i, want := range order {
		if listed[i].Slug != want {
			t.Fatalf("project %d = %s, want %s", i, listed[i].Slug, want)
		}
	}
}

func TestProjectHierarchyRoundTrip(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "geodin.db"))
	ctx := context.Background()

	project := geodin.Project{
		Slug: "p1",
		Name: "Project one",
		Hierarchy: []geodin.HierarchyLocation{
			{
				Name: "Borehole",
				Investigations: []geodin.HierarchyInvestigation{
					{
						Name: "Ground sample",
						DataTypes: []geodin.HierarchyDataType{
							{Name: "Lab analysis", MeasurementID: 7},
							{Name: "Empty one"},
						},
					},
				},
			},
		},
	}
	if err := store.PutProject(ctx, project); err != nil {
		t.Fatalf("put project: %v", err)
	}

	stored, err := store.GetProject(ctx, "p1")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if len(stored.Hierarchy) != 1 {
		t.Fatalf("expected 1 hierarchy location, got %d", len(stored.Hierarchy))
	}
	dataTypes := stored.Hierarchy[0].Investigations[0].DataTypes
	if dataTypes[0].MeasurementID != 7 {
		t.Fatalf("measurement id = %d, want 7", dataTypes[0].MeasurementID)
	}
	if dataTypes[1].MeasurementID != 0 {
		t.Fatalf("empty data type should have no measurement, got %d", dataTypes[1].MeasurementID)
	}
}

func TestDeactivateProjectsExcept(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "geodin.db"))
	ctx := context.Background()

	for _, project := range []geodin.Project{
		{Slug: "keep", Name: "Keep", StartingPointSlug: "sp", Active: true},
		{Slug: "drop", Name: "Drop", StartingPointSlug: "sp", Active: true},
		{Slug: "other", Name: "Other", StartingPointSlug: "elsewhere", Active: true},
	} {
		if err := store.PutProject(ctx, project); err != nil {
			t.Fatalf("put project %s: %v", project.Slug, err)
		}
	}

	deactivated, err := store.DeactivateProjectsExcept(ctx, "sp", []string{"keep"})
	if err != nil {
		t.Fatalf("deactivate projects: %v", err)
	}
	if deactivated != 1 {
		t.Fatalf("deactivated = %d, want 1", deactivated)
	}

	dropped, err := store.GetProject(ctx, "drop")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if dropped.Active {
		t.Fatal("expected drop to be inactive")
	}
	kept, err := store.GetProject(ctx, "keep")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if !kept.Active {
		t.Fatal("expected keep to stay active")
	}
	other, err := store.GetProject(ctx, "other")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if !other.Active {
		t.Fatal("expected other starting point's project to stay active")
	}
}

func TestUpsertMeasurementIsStablePerCombination(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "geodin.db"))
	ctx := context.Background()

	measurement := geodin.Measurement{
		Name:                  "P1, Borehole, Sample, Lab",
		ProjectSlug:           "p1",
		LocationTypeSlug:      "lt1",
		InvestigationTypeSlug: "it1",
		DataTypeSlug:          "dt1",
	}
	first, err := store.UpsertMeasurement(ctx, measurement)
	if err != nil {
		t.Fatalf("upsert measurement: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected assigned measurement id")
	}

	measurement.Name = "P1, Borehole, Sample, Lab (renamed)"
	second, err := store.UpsertMeasurement(ctx, measurement)
	if err != nil {
		t.Fatalf("re-upsert measurement: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected stable id %d, got %d", first.ID, second.ID)
	}
	if second.Name != measurement.Name {
		t.Fatalf("name = %q, want %q", second.Name, measurement.Name)
	}
}

func TestMeasurementPointCount(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "geodin.db"))
	ctx := context.Background()

	withPoints, err := store.UpsertMeasurement(ctx, geodin.Measurement{
		Name: "With points", ProjectSlug: "p1",
		LocationTypeSlug: "lt1", InvestigationTypeSlug: "it1", DataTypeSlug: "dt1",
	})
	if err != nil {
		t.Fatalf("upsert measurement: %v", err)
	}
	if _, err := store.UpsertMeasurement(ctx, geodin.Measurement{
		Name: "Without points", ProjectSlug: "p1",
		LocationTypeSlug: "lt1", InvestigationTypeSlug: "it1", DataTypeSlug: "dt2",
	}); err != nil {
		t.Fatalf("upsert measurement: %v", err)
	}

	for _, slug := range []string{"pt1", "pt2"} {
		if err := store.PutPoint(ctx, geodin.Point{Slug: slug, Name: slug, MeasurementID: withPoints.ID}); err != nil {
			t.Fatalf("put point %s: %v", slug, err)
		}
	}

	measurements, err := store.ListMeasurements(ctx)
	if err != nil {
		t.Fatalf("list measurements: %v", err)
	}
	if len(measurements) != 2 {
		t.Fatalf("expected 2 measurements, got %d", len(measurements))
	}
	counts := map[string]int{}
	for _, m := range measurements {
		counts[m.Name] = m.PointCount
	}
	if counts["With points"] != 2 {
		t.Fatalf("point count = %d, want 2", counts["With points"])
	}
	if counts["Without points"] != 0 {
		t.Fatalf("point count = %d, want 0", counts["Without points"])
	}
}

func TestPointRoundTrip(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "geodin.db"))
	ctx := context.Background()

	point := geodin.Point{
		Slug:          "pt1",
		Name:          "Point 1",
		MeasurementID: 3,
		X:             155000,
		Y:             463000,
		Z:             -1.5,
		Lon:           5.38720621,
		Lat:           52.15517440,
		SourceURL:     "http://geodin.example.com/api/points/pt1",
		Metadata:      json.RawMessage(`{"Maker":"Acme"}`),
	}
	if err := store.PutPoint(ctx, point); err != nil {
		t.Fatalf("put point: %v", err)
	}

	stored, err := store.GetPoint(ctx, "pt1")
	if err != nil {
		t.Fatalf("get point: %v", err)
	}
	if stored.Lat != point.Lat || stored.Lon != point.Lon {
		t.Fatalf("location = %v/%v, want %v/%v", stored.Lon, stored.Lat, point.Lon, point.Lat)
	}
	if string(stored.Metadata) != `{"Maker":"Acme"}` {
		t.Fatalf("metadata = %s", stored.Metadata)
	}

	points, err := store.ListMeasurementPoints(ctx, 3)
	if err != nil {
		t.Fatalf("list points: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
}

func TestTelemetryEventsRoundTrip(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "geodin.db"))
	ctx := context.Background()

	if err := store.AppendTelemetryEvent(ctx, storage.TelemetryEvent{
		Severity:  "INFO",
		Operation: "reload_project",
		Subject:   "p1",
		Detail:    "2 measurements, 10 points",
	}); err != nil {
		t.Fatalf("append telemetry event: %v", err)
	}

	events, err := store.ListTelemetryEvents(ctx, 10)
	if err != nil {
		t.Fatalf("list telemetry events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Operation != "reload_project" {
		t.Fatalf("operation = %q", events[0].Operation)
	}
	if events[0].Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
}

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store
}

func assertTableExists(t *testing.T, db *sql.DB, tableName string) {
	t.Helper()
	var name string
	row := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", tableName)
	if err := row.Scan(&name); err != nil {
		t.Fatalf("expected table %s: %v", tableName, err)
	}
}
