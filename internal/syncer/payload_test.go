package syncer

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPointPayloadUnmarshalSplitsExtras(t *testing.T) {
	raw := `{
		"Id": "B38A0113",
		"Name": "Peilbuis 113",
		"Xcoord": "155000.5",
		"Ycoord": 463000.25,
		"Zcoord": -1.5,
		"Url": "http://geodin.example.com/api/points/B38A0113",
		"Supplier": "Acme",
		"Maker": "Acme instruments"
	}`

	var payload PointPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal point: %v", err)
	}

	if payload.ID != "B38A0113" {
		t.Fatalf("id = %q", payload.ID)
	}
	if payload.X != 155000.5 {
		t.Fatalf("x = %v, want 155000.5", payload.X)
	}
	if payload.Y != 463000.25 {
		t.Fatalf("y = %v, want 463000.25", payload.Y)
	}
	if payload.Z != -1.5 {
		t.Fatalf("z = %v, want -1.5", payload.Z)
	}

	wantExtra := map[string]any{
		"Supplier": "Acme",
		"Maker":    "Acme instruments",
	}
	if diff := cmp.Diff(wantExtra, payload.Extra); diff != "" {
		t.Fatalf("extra mismatch (-want +got):\n%s", diff)
	}
	if got := payload.SupplierName(); got != "Acme" {
		t.Fatalf("supplier = %q, want %q", got, "Acme")
	}
}

func TestPointPayloadUnmarshalRejectsBadCoordinate(t *testing.T) {
	var payload PointPayload
	err := json.Unmarshal([]byte(`{"Id": "p", "Xcoord": "not a number"}`), &payload)
	if err == nil {
		t.Fatal("expected error for unparsable coordinate")
	}
}

func TestPointPayloadUnmarshalWithoutExtras(t *testing.T) {
	var payload PointPayload
	if err := json.Unmarshal([]byte(`{"Id": "p", "Name": "P"}`), &payload); err != nil {
		t.Fatalf("unmarshal point: %v", err)
	}
	if payload.Extra != nil {
		t.Fatalf("extra = %v, want nil", payload.Extra)
	}
}
