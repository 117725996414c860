package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// FieldValue is one displayable field of a point.
type FieldValue struct {
	Field string
	Value string
}

// PointView is one point of a measurement detail page.
type PointView struct {
	Name          string
	TimeseriesURL string
	Values        []FieldValue
}

// MeasurementView is the view-model of a measurement detail page.
type MeasurementView struct {
	Name         string
	SupplierName string
	SupplierURL  string
	Fields       []string
	Points       []PointView
}

// MeasurementPage renders one measurement with its reported fields and
// points.
func MeasurementPage(view MeasurementView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n", templ.EscapeString(view.Name)); err != nil {
			return err
		}

		if view.SupplierName != "" {
			if _, err := fmt.Fprintf(w, "<p>%s: <a href=\"%s\">%s</a></p>\n",
				templ.EscapeString(T(loc, "Supplier")),
				templ.EscapeString(view.SupplierURL),
				templ.EscapeString(view.SupplierName)); err != nil {
				return err
			}
		}

		if len(view.Fields) > 0 {
			if _, err := fmt.Fprintf(w, "<h2>%s</h2>\n<ul>\n",
				templ.EscapeString(T(loc, "Fields"))); err != nil {
				return err
			}
			for _, field := range view.Fields {
				if _, err := fmt.Fprintf(w, "<li>%s</li>\n", templ.EscapeString(field)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</ul>\n"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "<h2>%s</h2>\n<ul>\n",
			templ.EscapeString(T(loc, "Points"))); err != nil {
			return err
		}
		for _, point := range view.Points {
			if err := renderPoint(w, point); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</ul>\n"); err != nil {
			return err
		}
		return backLink(w, loc)
	})
}

func renderPoint(w io.Writer, point PointView) error {
	name := templ.EscapeString(point.Name)
	if point.TimeseriesURL != "" {
		name = fmt.Sprintf("<a href=\"%s\">%s</a>", templ.EscapeString(point.TimeseriesURL), name)
	}
	if _, err := fmt.Fprintf(w, "<li>%s\n<dl>\n", name); err != nil {
		return err
	}
	for _, value := range point.Values {
		if _, err := fmt.Fprintf(w, "<dt>%s</dt><dd>%s</dd>\n",
			templ.EscapeString(value.Field), templ.EscapeString(value.Value)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</dl>\n</li>\n")
	return err
}
