package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/types"
)

// WithPageContext needs ProvideLocalizer earlier in the chain. The tenant of
// the route wins over the one remembered in the session.
func WithPageContext(app Application) mux.MiddlewareFunc {
	offered := intl.Locales(app.GetSupportedLanguages())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			localizer, ok := intl.UseLocalizer(ctx)
			if !ok {
				panic(intl.ErrNoLocalizer)
			}
			locale, _ := intl.UseLocale(ctx)
			page := &types.PageContext{
				Locale:    locale,
				URL:       r.URL,
				Localizer: localizer,
				Offered:   offered,
			}
			switch slug, err := composables.UseTenant(ctx); {
			case err == nil:
				page.TenantSlug = slug
			default:
				if s, err := composables.UseSession(ctx); err == nil {
					page.TenantSlug = s.Tenant()
				}
			}
			next.ServeHTTP(w, r.WithContext(composables.WithPageCtx(ctx, page)))
		})
	}
}
