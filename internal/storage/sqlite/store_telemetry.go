package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/lizardsystem/geodin/internal/storage"
)

// AppendTelemetryEvent records one operational event.
func (s *Store) AppendTelemetryEvent(ctx context.Context, event storage.TelemetryEvent) error {
	if err := s.ready(); err != nil {
		return err
	}
	if event.Operation == "" {
		return fmt.Errorf("telemetry operation is required")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO telemetry_events (timestamp, severity, operation, subject, detail)
		 VALUES (?, ?, ?, ?, ?)`,
		event.Timestamp.UTC().UnixMilli(),
		event.Severity,
		event.Operation,
		event.Subject,
		event.Detail,
	)
	if err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}

// ListTelemetryEvents returns the most recent telemetry events, newest first.
func (s *Store) ListTelemetryEvents(ctx context.Context, limit int) ([]storage.TelemetryEvent, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT timestamp, severity, operation, subject, detail
		 FROM telemetry_events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list telemetry events: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]storage.TelemetryEvent, 0)
	for rows.Next() {
		var event storage.TelemetryEvent
		var timestamp int64
		if err := rows.Scan(&timestamp, &event.Severity, &event.Operation, &event.Subject, &event.Detail); err != nil {
			return nil, fmt.Errorf("scan telemetry event: %w", err)
		}
		event.Timestamp = time.UnixMilli(timestamp).UTC()
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate telemetry events: %w", err)
	}
	return events, nil
}
