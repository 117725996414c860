// Package routepath stores canonical HTTP paths for the web service.
package routepath

import "strconv"

const (
	Root   = "/"
	Health = "/up"

	ProjectsPrefix            = "/projects/"
	ProjectPattern            = ProjectsPrefix + "{projectSlug}/"
	ProjectMeasurementPattern = ProjectsPrefix + "{projectSlug}/measurements/{measurementID}/"
	SuppliersPrefix           = "/suppliers/"
	SupplierPattern           = SuppliersPrefix + "{supplierSlug}/"
	PointsPrefix              = "/points/"
	PointTimeseriesPattern    = PointsPrefix + "{pointSlug}/timeseries.json"
)

// Project returns the detail path for a project.
func Project(slug string) string {
	return ProjectsPrefix + slug + "/"
}

// ProjectMeasurement returns the detail path for a measurement within its
// project.
func ProjectMeasurement(projectSlug string, measurementID int64) string {
	return ProjectsPrefix + projectSlug + "/measurements/" + strconv.FormatInt(measurementID, 10) + "/"
}

// Supplier returns the detail path for a supplier.
func Supplier(slug string) string {
	return SuppliersPrefix + slug + "/"
}

// PointTimeseries returns the JSON timeseries path for a point.
func PointTimeseries(slug string) string {
	return PointsPrefix + slug + "/timeseries.json"
}
