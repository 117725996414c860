package syncer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ProjectPayload is one project entry as listed by an API starting point.
type ProjectPayload struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
	URL  string `json:"Url"`
}

// LocationTypePayload is the top level of a project document.
type LocationTypePayload struct {
	ID                 string                     `json:"Id"`
	Name               string                     `json:"Name"`
	InvestigationTypes []InvestigationTypePayload `json:"InvestigationTypes"`
}

// InvestigationTypePayload groups data types under one investigation type.
type InvestigationTypePayload struct {
	ID        string            `json:"Id"`
	Name      string            `json:"Name"`
	DataTypes []DataTypePayload `json:"DataTypes"`
}

// DataTypePayload is a leaf type. Fields names the values reported per point
// and Points carries the measured locations themselves.
type DataTypePayload struct {
	ID     string         `json:"Id"`
	Name   string         `json:"Name"`
	Fields []string       `json:"Fields"`
	Points []PointPayload `json:"Points"`
}

// PointPayload is a measured location. Geodin reports a handful of fixed
// keys plus free-form extras such as the supplier name; the extras are kept
// verbatim as point metadata.
type PointPayload struct {
	ID    string
	Name  string
	X     float64
	Y     float64
	Z     float64
	URL   string
	Extra map[string]any
}

// UnmarshalJSON splits the fixed point keys from the leftover metadata.
func (p *PointPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.ID = popString(raw, "Id")
	p.Name = popString(raw, "Name")
	p.URL = popString(raw, "Url")

	var err error
	if p.X, err = popFloat(raw, "Xcoord"); err != nil {
		return err
	}
	if p.Y, err = popFloat(raw, "Ycoord"); err != nil {
		return err
	}
	if p.Z, err = popFloat(raw, "Zcoord"); err != nil {
		return err
	}

	if len(raw) > 0 {
		p.Extra = raw
	}
	return nil
}

// SupplierName returns the supplier reported in the point's extra metadata,
// or the empty string.
func (p PointPayload) SupplierName() string {
	if p.Extra == nil {
		return ""
	}
	if name, ok := p.Extra["Supplier"].(string); ok {
		return strings.TrimSpace(name)
	}
	return ""
}

func popString(raw map[string]any, key string) string {
	value, ok := raw[key]
	if !ok {
		return ""
	}
	delete(raw, key)
	s, _ := value.(string)
	return s
}

func popFloat(raw map[string]any, key string) (float64, error) {
	value, ok := raw[key]
	if !ok {
		return 0, nil
	}
	delete(raw, key)
	f, ok := floatValue(value)
	if !ok {
		return 0, fmt.Errorf("point field %s: cannot parse %v as number", key, value)
	}
	return f, nil
}

// floatValue coerces the value types Geodin uses for numbers. Coordinates
// show up both as JSON numbers and as strings.
func floatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case nil:
		return 0, false
	default:
		return 0, false
	}
}
