package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ProjectDataType is a hierarchy leaf; MeasurementURL is empty when the data
// type carries no measurement.
type ProjectDataType struct {
	Name           string
	MeasurementURL string
}

// ProjectInvestigation groups the data types of one investigation type.
type ProjectInvestigation struct {
	Name      string
	DataTypes []ProjectDataType
}

// ProjectLocation is the top level of a project's hierarchy view.
type ProjectLocation struct {
	Name           string
	Investigations []ProjectInvestigation
}

// ProjectView is the view-model of a project detail page.
type ProjectView struct {
	Name      string
	Locations []ProjectLocation
}

// ProjectPage renders a project's synced hierarchy as nested lists with
// links to the measurements.
func ProjectPage(view ProjectView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n", templ.EscapeString(view.Name)); err != nil {
			return err
		}

		if len(view.Locations) == 0 {
			if _, err := fmt.Fprintf(w, "<p>%s</p>\n",
				templ.EscapeString(T(loc, "This project has no synced data yet."))); err != nil {
				return err
			}
			return backLink(w, loc)
		}

		if _, err := io.WriteString(w, "<ul>\n"); err != nil {
			return err
		}
		for _, location := range view.Locations {
			if _, err := fmt.Fprintf(w, "<li>%s\n<ul>\n", templ.EscapeString(location.Name)); err != nil {
				return err
			}
			for _, investigation := range location.Investigations {
				if err := renderInvestigation(w, investigation); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</ul>\n</li>\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</ul>\n"); err != nil {
			return err
		}
		return backLink(w, loc)
	})
}

func renderInvestigation(w io.Writer, investigation ProjectInvestigation) error {
	if _, err := fmt.Fprintf(w, "<li>%s\n<ul>\n", templ.EscapeString(investigation.Name)); err != nil {
		return err
	}
	for _, dataType := range investigation.DataTypes {
		var err error
		if dataType.MeasurementURL == "" {
			_, err = fmt.Fprintf(w, "<li><em>%s</em></li>\n", templ.EscapeString(dataType.Name))
		} else {
			_, err = fmt.Fprintf(w, "<li><a href=\"%s\">%s</a></li>\n",
				templ.EscapeString(dataType.MeasurementURL), templ.EscapeString(dataType.Name))
		}
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</ul>\n</li>\n")
	return err
}
