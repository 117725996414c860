package syncer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Series is one chartable value series of a point, as consumed by the
// frontend chart library: Data holds [unix-millis, value] pairs.
type Series struct {
	Label string       `json:"label"`
	Data  [][2]float64 `json:"data"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timeseries fetches a point's raw records and pivots them into one series
// per reported field. Records without a parsable date and values that are
// not numeric are skipped.
func Timeseries(ctx context.Context, fetcher Fetcher, sourceURL string) ([]Series, error) {
	var records []map[string]any
	if err := fetcher.FetchJSON(ctx, sourceURL, &records); err != nil {
		return nil, fmt.Errorf("fetch timeseries: %w", err)
	}

	byLabel := map[string][][2]float64{}
	for _, record := range records {
		when, ok := recordDate(record)
		if !ok {
			continue
		}
		millis := float64(when.UnixMilli())
		for key, value := range record {
			if isDateKey(key) {
				continue
			}
			number, ok := floatValue(value)
			if !ok {
				continue
			}
			byLabel[key] = append(byLabel[key], [2]float64{millis, number})
		}
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	series := make([]Series, 0, len(labels))
	for _, label := range labels {
		data := byLabel[label]
		sort.Slice(data, func(i, j int) bool { return data[i][0] < data[j][0] })
		series = append(series, Series{Label: label, Data: data})
	}
	return series, nil
}

func recordDate(record map[string]any) (time.Time, bool) {
	for key, value := range record {
		if !isDateKey(key) {
			continue
		}
		raw, ok := value.(string)
		if !ok {
			return time.Time{}, false
		}
		return parseDate(raw)
	}
	return time.Time{}, false
}

func isDateKey(key string) bool {
	return strings.EqualFold(key, "date")
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if when, err := time.Parse(layout, raw); err == nil {
			return when, true
		}
	}
	return time.Time{}, false
}
