package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/session"
)

// WithSession binds the browser session named by the sid cookie, starting a
// new one when the cookie is missing or the session expired.
func WithSession(store *session.Store, conf *configuration.Configuration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(conf.SidCookieKey); err == nil {
				if s, ok := store.Get(c.Value); ok {
					next.ServeHTTP(w, r.WithContext(composables.WithSession(r.Context(), s)))
					return
				}
			}
			s, err := store.Create()
			if err != nil {
				composables.TryUseLogger(r.Context()).WithError(err).Error("failed to start session")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, SessionCookie(conf, s.ID))
			next.ServeHTTP(w, r.WithContext(composables.WithSession(r.Context(), s)))
		})
	}
}

func SessionCookie(conf *configuration.Configuration, id string) *http.Cookie {
	return &http.Cookie{
		Name:     conf.SidCookieKey,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   conf.GoAppEnvironment == configuration.Production,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(conf.SessionDuration.Seconds()),
	}
}
