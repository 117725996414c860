package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/lizardsystem/geodin/internal/storage"
)

type fakeTelemetryStore struct {
	events []storage.TelemetryEvent
}

func (f *fakeTelemetryStore) AppendTelemetryEvent(_ context.Context, event storage.TelemetryEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeTelemetryStore) ListTelemetryEvents(context.Context, int) ([]storage.TelemetryEvent, error) {
	return f.events, nil
}

func TestEmitFillsTimestampAndSeverity(t *testing.T) {
	store := &fakeTelemetryStore{}
	emitter := NewEmitter(store)
	fixed := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	emitter.clock = func() time.Time { return fixed }

	if err := emitter.Emit(context.Background(), storage.TelemetryEvent{Operation: "reload"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(store.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(store.events))
	}
	if !store.events[0].Timestamp.Equal(fixed) {
		t.Fatalf("timestamp = %v, want %v", store.events[0].Timestamp, fixed)
	}
	if store.events[0].Severity != SeverityInfo {
		t.Fatalf("severity = %q, want %q", store.events[0].Severity, SeverityInfo)
	}
}

func TestEmitNoopWithoutStore(t *testing.T) {
	var emitter *Emitter
	if err := emitter.Emit(context.Background(), storage.TelemetryEvent{Operation: "reload"}); err != nil {
		t.Fatalf("nil emitter should be a no-op, got %v", err)
	}
	if err := NewEmitter(nil).Emit(context.Background(), storage.TelemetryEvent{Operation: "reload"}); err != nil {
		t.Fatalf("nil store should be a no-op, got %v", err)
	}
}
