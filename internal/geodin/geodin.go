// Package geodin holds the domain model for data imported from the Geodin
// API and the sync logic that keeps the local copy up to date.
//
// Geodin exposes a shallow JSON hierarchy: an API starting point lists
// projects, and a project lists location types, which list investigation
// types, which list data types, which carry measured points. Slugs are taken
// from Geodin's own Id fields so local identifiers never have to match
// Geodin's numeric ones.
package geodin

import (
	"encoding/json"
	"sort"
)

// StartingPoint references the Geodin URL that lists the available projects.
//
// Reloading a starting point creates or updates the projects listed there.
// New projects start inactive; projects that are no longer listed are marked
// inactive automatically.
type StartingPoint struct {
	Slug      string
	Name      string
	SourceURL string
	Metadata  json.RawMessage
}

// Project is a named collection of imported measurements and the per-project
// entry point into the Geodin API.
type Project struct {
	Slug              string
	Name              string
	SourceURL         string
	StartingPointSlug string
	// Active marks whether the project is publicly visible on this site.
	Active    bool
	Metadata  json.RawMessage
	Hierarchy []HierarchyLocation
}

// HierarchyLocation is the top level of a project's synced hierarchy.
type HierarchyLocation struct {
	Name           string                   `json:"name"`
	Investigations []HierarchyInvestigation `json:"investigations"`
}

// HierarchyInvestigation groups data types under one investigation type.
type HierarchyInvestigation struct {
	Name      string              `json:"name"`
	DataTypes []HierarchyDataType `json:"data_types"`
}

// HierarchyDataType is a leaf of the hierarchy. MeasurementID is zero when
// the data type had no points and therefore no measurement.
type HierarchyDataType struct {
	Name          string `json:"name"`
	MeasurementID int64  `json:"measurement_id,omitempty"`
}

// Supplier is an external organization providing source data.
type Supplier struct {
	Slug      string
	Name      string
	HTMLColor string
}

// ItemTypeKind distinguishes the three type levels of the Geodin hierarchy.
type ItemTypeKind string

const (
	KindLocationType      ItemTypeKind = "location"
	KindInvestigationType ItemTypeKind = "investigation"
	KindDataType          ItemTypeKind = "data"
)

// ItemType is one entry of a hierarchy level. For data types the metadata
// carries the list of fields reported for each point.
type ItemType struct {
	Kind     ItemTypeKind
	Slug     string
	Name     string
	Metadata json.RawMessage
}

// Fields returns the field names stored in a data type's metadata.
func (it ItemType) Fields() []string {
	if len(it.Metadata) == 0 {
		return nil
	}
	var meta struct {
		Fields []string `json:"fields"`
	}
	if err := json.Unmarshal(it.Metadata, &meta); err != nil {
		return nil
	}
	return meta.Fields
}

// Measurement is a data series, unique per project, location type,
// investigation type and data type combination.
type Measurement struct {
	ID                    int64
	Name                  string
	ProjectSlug           string
	SupplierSlug          string
	LocationTypeSlug      string
	InvestigationTypeSlug string
	DataTypeSlug          string
	Metadata              json.RawMessage
	// PointCount is populated on reads; a measurement without points is
	// rendered with a warning.
	PointCount int
}

// Point is a single measured location with optional timeseries data behind
// its source URL.
type Point struct {
	Slug          string
	Name          string
	MeasurementID int64
	X             float64
	Y             float64
	Z             float64
	Lon           float64
	Lat           float64
	SourceURL     string
	Metadata      json.RawMessage
}

// FieldValue is one displayable field of a point.
type FieldValue struct {
	Field string
	Value string
}

// ContentForDisplay returns the point's fields and metadata as sorted
// field/value pairs for popup rendering.
func (p Point) ContentForDisplay() []FieldValue {
	values := map[string]string{
		"name":       p.Name,
		"x":          formatFloat(p.X),
		"y":          formatFloat(p.Y),
		"z":          formatFloat(p.Z),
		"source_url": p.SourceURL,
	}
	if len(p.Metadata) > 0 {
		var meta map[string]any
		if err := json.Unmarshal(p.Metadata, &meta); err == nil {
			for key, value := range meta {
				values[key] = formatAny(value)
			}
		}
	}
	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	result := make([]FieldValue, 0, len(fields))
	for _, field := range fields {
		result = append(result, FieldValue{Field: field, Value: values[field]})
	}
	return result
}
