package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// SupplierView is the view-model of a supplier detail page.
type SupplierView struct {
	Name         string
	HTMLColor    string
	Measurements []MeasurementItem
}

// SupplierPage renders one supplier with its measurements.
func SupplierPage(view SupplierView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		heading := templ.EscapeString(view.Name)
		if view.HTMLColor != "" {
			heading = fmt.Sprintf("<span style=\"color: %s\">%s</span>",
				templ.EscapeString(view.HTMLColor), heading)
		}
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n", heading); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "<h2>%s</h2>\n<ul>\n",
			templ.EscapeString(T(loc, "Measurements"))); err != nil {
			return err
		}
		for _, measurement := range view.Measurements {
			if _, err := fmt.Fprintf(w, "<li><a href=\"%s\">%s</a></li>\n",
				templ.EscapeString(measurement.URL), templ.EscapeString(measurement.Name)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</ul>\n"); err != nil {
			return err
		}
		return backLink(w, loc)
	})
}
