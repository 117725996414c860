package coords

import (
	"math"
	"testing"
)

func TestRDToWGS84Origin(t *testing.T) {
	// The RD origin is the Onze Lieve Vrouwetoren in Amersfoort.
	lon, lat := RDToWGS84(155000, 463000)
	if math.Abs(lat-52.15517440) > 1e-7 {
		t.Fatalf("lat = %v, want 52.15517440", lat)
	}
	if math.Abs(lon-5.38720621) > 1e-7 {
		t.Fatalf("lon = %v, want 5.38720621", lon)
	}
}

func TestRDToWGS84Westertoren(t *testing.T) {
	// Westertoren, Amsterdam. Reference values from the
	// Schreutelkamp/Strang van Hees publication.
	lon, lat := RDToWGS84(120700.723, 487525.501)
	if math.Abs(lat-52.3745311) > 1e-4 {
		t.Fatalf("lat = %v, want ~52.3745311", lat)
	}
	if math.Abs(lon-4.8826172) > 1e-4 {
		t.Fatalf("lon = %v, want ~4.8826172", lon)
	}
}
