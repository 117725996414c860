package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// NotFoundPage renders the 404 body.
func NotFoundPage(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n",
			templ.EscapeString(T(loc, "Page not found"))); err != nil {
			return err
		}
		return backLink(w, loc)
	})
}
