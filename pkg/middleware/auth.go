package middleware

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/htmx"
)

// RedirectToLogin sends the browser to the login page, through HX-Redirect
// for htmx requests so the whole page navigates.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if r.Method == http.MethodGet && !htmx.IsHxRequest(r) {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	if htmx.IsHxRequest(r) {
		htmx.Redirect(w, target)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// RequireAuth lets only sessions with a backend identity through.
func RequireAuth() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := composables.UseSession(r.Context())
			if err != nil || !s.Authenticated() {
				RedirectToLogin(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireTenant resolves the {tenant} route variable against the tenants of
// the signed-in user and remembers it as the session's current tenant.
func RequireTenant() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := mux.Vars(r)["tenant"]
			s, err := composables.UseSession(r.Context())
			if err != nil {
				RedirectToLogin(w, r)
				return
			}
			identity, err := s.Identity()
			if err != nil {
				RedirectToLogin(w, r)
				return
			}
			if !identity.HasTenant(slug) {
				composables.TryUseLogger(r.Context()).WithField("tenant", slug).Warn("tenant not available to user")
				http.NotFound(w, r)
				return
			}
			s.SetTenant(slug)
			next.ServeHTTP(w, r.WithContext(composables.WithTenant(r.Context(), slug)))
		})
	}
}

// PublicTenant binds the {tenant} route variable without checking membership.
func PublicTenant() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := mux.Vars(r)["tenant"]
			if slug == "" {
				http.NotFound(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithTenant(r.Context(), slug)))
		})
	}
}
