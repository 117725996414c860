package telemetry

import (
	"context"
	"time"

	"github.com/lizardsystem/geodin/internal/storage"
)

// Severity levels for telemetry events.
const (
	SeverityInfo  = "INFO"
	SeverityWarn  = "WARN"
	SeverityError = "ERROR"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, event storage.TelemetryEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		if e.clock == nil {
			event.Timestamp = time.Now().UTC()
		} else {
			event.Timestamp = e.clock().UTC()
		}
	}
	if event.Severity == "" {
		event.Severity = SeverityInfo
	}
	return e.store.AppendTelemetryEvent(ctx, event)
}
