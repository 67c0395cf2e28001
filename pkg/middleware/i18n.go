package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/iota-uz/boxoffice/pkg/intl"
)

// LocaleCookie stores the language picked in the UI.
const LocaleCookie = "lang"

// Application is the part of the app the localizer needs.
type Application interface {
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
}

// ProvideLocalizer binds a localizer for the visitor's language. The lang
// cookie beats Accept-Language.
func ProvideLocalizer(app Application) mux.MiddlewareFunc {
	bundle := app.Bundle()
	negotiator := intl.NewNegotiator(app.GetSupportedLanguages())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var stored string
			if c, err := r.Cookie(LocaleCookie); err == nil {
				stored = c.Value
			}
			locale := negotiator.Preferred(stored, r.Header.Get("Accept-Language"))
			ctx := intl.WithLocalizer(r.Context(), i18n.NewLocalizer(bundle, locale.Code))
			ctx = intl.WithLocale(ctx, locale.Tag)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
