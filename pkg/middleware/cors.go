package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/iota-uz/boxoffice/pkg/routing"
)

// Cors allows credentialed browser calls from the given origins. Public API
// routes are left to the policy their own router installs.
func Cors(classifier *routing.Classifier, allowOrigins ...string) mux.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", "HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger"},
		ExposedHeaders:   []string{"HX-Trigger", "HX-Replace-Url", "HX-Redirect", "X-Request-Id"},
	})
	return func(next http.Handler) http.Handler {
		guarded := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if classifier != nil && classifier.ClassifyPath(r.URL.Path) == routing.RouteClassPublicAPI {
				next.ServeHTTP(w, r)
				return
			}
			guarded.ServeHTTP(w, r)
		})
	}
}

// PublicCors is used for read-only APIs consumed by third-party sites.
func PublicCors(allowOrigins ...string) mux.MiddlewareFunc {
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         600,
	})
	return c.Handler
}
