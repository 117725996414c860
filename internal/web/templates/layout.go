package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/lizardsystem/geodin/internal/platform/branding"
	"github.com/lizardsystem/geodin/internal/web/routepath"
)

// Page wraps body in the base HTML document with the sidebar.
func Page(title, lang string, loc Localizer, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!doctype html>
<html lang="%s">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s - %s</title>
</head>
<body>
<div id="sidebar">
<p>%s</p>
</div>
<div id="content">
`,
			templ.EscapeString(lang),
			templ.EscapeString(title),
			templ.EscapeString(branding.AppName),
			templ.EscapeString(T(loc, "Lizard Geodin shows measurement data imported from Fugro's Geodin API.")),
		)
		if err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, "</div>\n</body>\n</html>\n")
		return err
	})
}

// backLink renders the link back to the overview page.
func backLink(w io.Writer, loc Localizer) error {
	_, err := fmt.Fprintf(w, "<p><a href=\"%s\">%s</a></p>\n",
		routepath.Root, templ.EscapeString(T(loc, "Back to the overview")))
	return err
}
