// Package templates renders the Geodin pages as templ components.
//
// Components take an explicit view struct and a Localizer; they never reach
// into storage themselves. All user-facing strings are keyed by their
// English source text.
package templates

import "golang.org/x/text/message"

// Localizer translates user-facing strings.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T translates key through loc, falling back to the key itself when no
// localizer is supplied.
func T(loc Localizer, key string) string {
	if loc == nil {
		return key
	}
	return loc.Sprintf(key)
}
