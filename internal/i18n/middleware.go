package i18n

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type contextKey string

const localeKey contextKey = "locale"

// LocaleCookie is the cookie remembering the chosen language
const LocaleCookie = "locale"

// Middleware resolves the request locale from the "locale" query parameter,
// the locale cookie, then Accept-Language, and stores it in the request context
func Middleware(catalog *Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := FromRequest(r, catalog.DefaultLocale())
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
		})
	}
}

// FromRequest returns the first supported locale the request asks for, or def
func FromRequest(r *http.Request, def string) string {
	if l := Normalize(r.URL.Query().Get("locale")); l != "" {
		return l
	}
	if cookie, err := r.Cookie(LocaleCookie); err == nil {
		if l := Normalize(cookie.Value); l != "" {
			return l
		}
	}
	if l := fromAcceptLanguage(r.Header.Get("Accept-Language")); l != "" {
		return l
	}
	return def
}

// fromAcceptLanguage returns the highest weighted supported language of the header
func fromAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		base, _ := tag.Base()
		if l := Normalize(base.String()); l != "" {
			return l
		}
	}
	return ""
}

// WithLocale returns a copy of ctx carrying locale
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// FromContext returns the request locale, or DefaultLocale when none was resolved
func FromContext(ctx context.Context) string {
	if l, ok := ctx.Value(localeKey).(string); ok && l != "" {
		return l
	}
	return DefaultLocale
}

// HasExplicitLocale reports whether the request chose a language by query parameter or cookie
func HasExplicitLocale(r *http.Request) bool {
	if Normalize(r.URL.Query().Get("locale")) != "" {
		return true
	}
	cookie, err := r.Cookie(LocaleCookie)
	return err == nil && Normalize(cookie.Value) != ""
}
