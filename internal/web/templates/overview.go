package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Link is a named reference to another page.
type Link struct {
	Name string
	URL  string
}

// MeasurementItem is one measurement entry of a listing.
type MeasurementItem struct {
	Name      string
	URL       string
	HasPoints bool
}

// OverviewView is the view-model of the overview page.
type OverviewView struct {
	PageTitle string
	Suppliers []Link
	Projects  []Link
	// ShowActivationHint is set when projects exist but none is activated.
	ShowActivationHint bool
	Measurements       []MeasurementItem
	APIStartingPoints  []Link
}

// OverviewPage renders the site overview: suppliers, projects, measurements
// and API starting points.
func OverviewPage(view OverviewView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n", templ.EscapeString(view.PageTitle)); err != nil {
			return err
		}

		if err := linkSection(w, loc, "Suppliers", view.Suppliers); err != nil {
			return err
		}

		if err := linkSection(w, loc, "Projects", view.Projects); err != nil {
			return err
		}
		if view.ShowActivationHint {
			if _, err := fmt.Fprintf(w, "<p>%s</p>\n",
				templ.EscapeString(T(loc, "No project has been activated yet."))); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "<h2>%s</h2>\n<ul>\n",
			templ.EscapeString(T(loc, "Measurements"))); err != nil {
			return err
		}
		for _, measurement := range view.Measurements {
			anchor := fmt.Sprintf("<a href=\"%s\">%s</a>",
				templ.EscapeString(measurement.URL), templ.EscapeString(measurement.Name))
			var err error
			if measurement.HasPoints {
				_, err = fmt.Fprintf(w, "<li>%s</li>\n", anchor)
			} else {
				_, err = fmt.Fprintf(w, "<li><em>%s</em> %s</li>\n",
					anchor, templ.EscapeString(T(loc, "Warning: no points")))
			}
			if err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</ul>\n"); err != nil {
			return err
		}

		return linkSection(w, loc, "API starting points", view.APIStartingPoints)
	})
}

// linkSection renders a heading plus a list of anchors. An empty list still
// renders the list element so the section reads as intentionally empty.
func linkSection(w io.Writer, loc Localizer, heading string, links []Link) error {
	if _, err := fmt.Fprintf(w, "<h2>%s</h2>\n<ul>\n", templ.EscapeString(T(loc, heading))); err != nil {
		return err
	}
	for _, link := range links {
		if _, err := fmt.Fprintf(w, "<li><a href=\"%s\">%s</a></li>\n",
			templ.EscapeString(link.URL), templ.EscapeString(link.Name)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</ul>\n")
	return err
}
