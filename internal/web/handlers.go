package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lizardsystem/geodin/internal/geodin"
	"github.com/lizardsystem/geodin/internal/storage"
	"github.com/lizardsystem/geodin/internal/syncer"
	"github.com/lizardsystem/geodin/internal/web/routepath"
	"github.com/lizardsystem/geodin/internal/web/templates"
)

// Store is the read surface the web handlers need.
type Store interface {
	storage.StartingPointStore
	storage.ProjectStore
	storage.SupplierStore
	storage.ItemTypeStore
	storage.MeasurementStore
	storage.PointStore
}

type handlers struct {
	store   Store
	fetcher syncer.Fetcher
}

func (h handlers) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	loc, tag := localize(w, r)

	suppliers, err := h.store.ListSuppliers(ctx)
	if err != nil {
		h.serverError(w, "list suppliers", err)
		return
	}
	projects, err := h.store.ListProjects(ctx)
	if err != nil {
		h.serverError(w, "list projects", err)
		return
	}
	measurements, err := h.store.ListMeasurements(ctx)
	if err != nil {
		h.serverError(w, "list measurements", err)
		return
	}
	startingPoints, err := h.store.ListStartingPoints(ctx)
	if err != nil {
		h.serverError(w, "list starting points", err)
		return
	}

	view := templates.OverviewView{PageTitle: loc.Sprintf("Overview")}
	for _, supplier := range suppliers {
		view.Suppliers = append(view.Suppliers, templates.Link{
			Name: supplier.Name,
			URL:  routepath.Supplier(supplier.Slug),
		})
	}
	for _, project := range projects {
		if !project.Active {
			continue
		}
		view.Projects = append(view.Projects, templates.Link{
			Name: project.Name,
			URL:  routepath.Project(project.Slug),
		})
	}
	view.ShowActivationHint = len(projects) > 0 && len(view.Projects) == 0
	for _, measurement := range measurements {
		view.Measurements = append(view.Measurements, measurementItem(measurement))
	}
	for _, point := range startingPoints {
		view.APIStartingPoints = append(view.APIStartingPoints, templates.Link{
			Name: point.Name,
			URL:  point.SourceURL,
		})
	}

	h.writePage(w, r, http.StatusOK, view.PageTitle, tag, loc,
		templates.OverviewPage(view, loc))
}

func (h handlers) handleProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("projectSlug")

	project, err := h.store.GetProject(ctx, slug)
	if errors.Is(err, storage.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, "load project", err)
		return
	}
	if !project.Active {
		h.notFound(w, r)
		return
	}

	view := templates.ProjectView{Name: project.Name}
	for _, location := range project.Hierarchy {
		projectLocation := templates.ProjectLocation{Name: location.Name}
		for _, investigation := range location.Investigations {
			projectInvestigation := templates.ProjectInvestigation{Name: investigation.Name}
			for _, dataType := range investigation.DataTypes {
				projectDataType := templates.ProjectDataType{Name: dataType.Name}
				if dataType.MeasurementID != 0 {
					projectDataType.MeasurementURL = routepath.ProjectMeasurement(project.Slug, dataType.MeasurementID)
				}
				projectInvestigation.DataTypes = append(projectInvestigation.DataTypes, projectDataType)
			}
			projectLocation.Investigations = append(projectLocation.Investigations, projectInvestigation)
		}
		view.Locations = append(view.Locations, projectLocation)
	}

	loc, tag := localize(w, r)
	h.writePage(w, r, http.StatusOK, project.Name, tag, loc,
		templates.ProjectPage(view, loc))
}

func (h handlers) handleMeasurement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectSlug := r.PathValue("projectSlug")

	id, err := strconv.ParseInt(r.PathValue("measurementID"), 10, 64)
	if err != nil {
		h.notFound(w, r)
		return
	}
	measurement, err := h.store.GetMeasurement(ctx, projectSlug, id)
	if errors.Is(err, storage.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, "load measurement", err)
		return
	}

	view := templates.MeasurementView{Name: measurement.Name}
	if measurement.SupplierSlug != "" {
		supplier, err := h.store.GetSupplier(ctx, measurement.SupplierSlug)
		if err == nil {
			view.SupplierName = supplier.Name
			view.SupplierURL = routepath.Supplier(supplier.Slug)
		} else if !errors.Is(err, storage.ErrNotFound) {
			h.serverError(w, "load supplier", err)
			return
		}
	}
	if dataType, err := h.store.GetItemType(ctx, geodin.KindDataType, measurement.DataTypeSlug); err == nil {
		view.Fields = dataType.Fields()
	}

	points, err := h.store.ListMeasurementPoints(ctx, measurement.ID)
	if err != nil {
		h.serverError(w, "list points", err)
		return
	}
	for _, point := range points {
		pointView := templates.PointView{Name: point.Name}
		if point.SourceURL != "" {
			pointView.TimeseriesURL = routepath.PointTimeseries(point.Slug)
		}
		for _, value := range point.ContentForDisplay() {
			pointView.Values = append(pointView.Values, templates.FieldValue{
				Field: value.Field,
				Value: value.Value,
			})
		}
		view.Points = append(view.Points, pointView)
	}

	loc, tag := localize(w, r)
	h.writePage(w, r, http.StatusOK, measurement.Name, tag, loc,
		templates.MeasurementPage(view, loc))
}

func (h handlers) handleSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("supplierSlug")

	supplier, err := h.store.GetSupplier(ctx, slug)
	if errors.Is(err, storage.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, "load supplier", err)
		return
	}
	measurements, err := h.store.ListSupplierMeasurements(ctx, slug)
	if err != nil {
		h.serverError(w, "list supplier measurements", err)
		return
	}

	view := templates.SupplierView{Name: supplier.Name, HTMLColor: supplier.HTMLColor}
	for _, measurement := range measurements {
		view.Measurements = append(view.Measurements, measurementItem(measurement))
	}

	loc, tag := localize(w, r)
	h.writePage(w, r, http.StatusOK, supplier.Name, tag, loc,
		templates.SupplierPage(view, loc))
}

// handlePointTimeseries proxies a point's raw records as chartable JSON.
func (h handlers) handlePointTimeseries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	point, err := h.store.GetPoint(ctx, r.PathValue("pointSlug"))
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, "load point", err)
		return
	}
	if point.SourceURL == "" {
		http.NotFound(w, r)
		return
	}

	series, err := syncer.Timeseries(ctx, h.fetcher, point.SourceURL)
	if err != nil {
		log.Printf("fetch timeseries for %s: %v", point.Slug, err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(series); err != nil {
		log.Printf("encode timeseries for %s: %v", point.Slug, err)
	}
}

func (h handlers) notFound(w http.ResponseWriter, r *http.Request) {
	loc, tag := localize(w, r)
	h.writePage(w, r, http.StatusNotFound, loc.Sprintf("Page not found"), tag, loc,
		templates.NotFoundPage(loc))
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, statusCode int,
	title string, tag language.Tag, loc *message.Printer, body templ.Component) {

	var buf bytes.Buffer
	page := templates.Page(title, tag.String(), loc, body)
	if err := page.Render(r.Context(), &buf); err != nil {
		h.serverError(w, "render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
}

func (h handlers) serverError(w http.ResponseWriter, operation string, err error) {
	log.Printf("%s: %v", operation, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func measurementItem(measurement geodin.Measurement) templates.MeasurementItem {
	return templates.MeasurementItem{
		Name:      measurement.Name,
		URL:       routepath.ProjectMeasurement(measurement.ProjectSlug, measurement.ID),
		HasPoints: measurement.PointCount > 0,
	}
}
