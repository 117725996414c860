package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTimeseriesPivotsRecordsPerField(t *testing.T) {
	fetcher := &fakeFetcher{documents: map[string]string{
		"http://geodin.example.com/api/points/PT1/data": `[
			{"Date": "2026-01-02", "Level": -1.5, "Temperature": "9.5"},
			{"Date": "2026-01-01", "Level": -1.25, "Temperature": 10},
			{"Date": "2026-01-03", "Level": -1.75, "Temperature": "frozen"}
		]`,
	}}

	series, err := Timeseries(context.Background(), fetcher,
		"http://geodin.example.com/api/points/PT1/data")
	if err != nil {
		t.Fatalf("timeseries: %v", err)
	}

	day := func(d int) float64 {
		return float64(time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC).UnixMilli())
	}
	want := []Series{
		{Label: "Level", Data: [][2]float64{
			{day(1), -1.25}, {day(2), -1.5}, {day(3), -1.75},
		}},
		{Label: "Temperature", Data: [][2]float64{
			{day(1), 10}, {day(2), 9.5},
		}},
	}
	if diff := cmp.Diff(want, series); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestTimeseriesSkipsRecordsWithoutDate(t *testing.T) {
	fetcher := &fakeFetcher{documents: map[string]string{
		"http://geodin.example.com/api/points/PT1/data": `[
			{"Level": -1.5},
			{"date": "2026-01-01T12:00:00", "Level": -1.25}
		]`,
	}}

	series, err := Timeseries(context.Background(), fetcher,
		"http://geodin.example.com/api/points/PT1/data")
	if err != nil {
		t.Fatalf("timeseries: %v", err)
	}
	if len(series) != 1 || len(series[0].Data) != 1 {
		t.Fatalf("series = %+v", series)
	}
	wantMillis := float64(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).UnixMilli())
	if series[0].Data[0][0] != wantMillis {
		t.Fatalf("millis = %v, want %v", series[0].Data[0][0], wantMillis)
	}
}

func TestTimeseriesFetchErrorPropagates(t *testing.T) {
	fetcher := &fakeFetcher{documents: map[string]string{}}
	if _, err := Timeseries(context.Background(), fetcher, "http://nowhere"); err == nil {
		t.Fatal("expected error")
	}
}
