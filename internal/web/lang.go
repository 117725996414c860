package web

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	platformi18n "github.com/lizardsystem/geodin/internal/platform/i18n"
)

const (
	// langParam is the query parameter used to select a language.
	langParam = "lang"
	// langCookieName stores the visitor's language preference.
	langCookieName = "geodin_lang"
)

// resolveTag determines the best language tag for the request. The bool
// reports whether the choice came from the query parameter and should be
// persisted as a cookie.
func resolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}

	if value := strings.TrimSpace(r.URL.Query().Get(langParam)); value != "" {
		if tag, ok := platformi18n.ParseTag(value); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(langCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}

	return platformi18n.DefaultTag(), false
}

// setLanguageCookie persists the selected language on the response.
func setLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     langCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// localize resolves the request language and returns a printer for it,
// persisting an explicit choice as a cookie.
func localize(w http.ResponseWriter, r *http.Request) (*message.Printer, language.Tag) {
	tag, persist := resolveTag(r)
	if persist {
		setLanguageCookie(w, tag)
	}
	return message.NewPrinter(tag), tag
}
