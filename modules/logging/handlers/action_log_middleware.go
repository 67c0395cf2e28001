package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/modules/logging/domain/entities/activity"
	"github.com/iota-uz/boxoffice/modules/logging/services"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/middleware"
	"github.com/iota-uz/boxoffice/pkg/session"
)

// Table navigation posts change no data.
var quietPrefixes = []string{"/tables/", "/spotlight", "/assets/"}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func quiet(path string) bool {
	for _, p := range quietPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func actorOf(s *session.Session) string {
	if s == nil {
		return ""
	}
	id, err := s.Identity()
	if err != nil {
		return ""
	}
	return id.Email
}

// ActionLogMiddleware records mutating requests of signed-in sessions when
// enabled. Recording is best effort and never blocks the request.
func ActionLogMiddleware(app application.Application) mux.MiddlewareFunc {
	conf := configuration.Use()
	if !conf.ActionLogEnabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return actionLog(app.Sessions(), conf, func() activityRecorder {
		return app.Service(services.ActivityService{}).(*services.ActivityService)
	})
}

func actionLog(store *session.Store, conf *configuration.Configuration, recorder func() activityRecorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mutating(r.Method) || quiet(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			var sess *session.Session
			if c, err := r.Cookie(conf.SidCookieKey); err == nil && store != nil {
				sess, _ = store.Get(c.Value)
			}
			// Sign-out clears the identity, so the actor is read before and after.
			actor := actorOf(sess)

			m := httpsnoop.CaptureMetrics(next, w, r)

			if after := actorOf(sess); after != "" {
				actor = after
			}
			if actor == "" {
				return
			}
			entry := &activity.Entry{
				Kind:      activity.KindRequest,
				Tenant:    mux.Vars(r)["tenant"],
				Actor:     actor,
				Subject:   r.URL.Path,
				Summary:   strings.ToUpper(r.Method) + " " + r.URL.Path,
				Method:    strings.ToUpper(r.Method),
				Path:      r.URL.Path,
				Status:    m.Code,
				IP:        middleware.ClientIP(r, conf.RealIPHeader),
				UserAgent: r.UserAgent(),
			}
			if err := recorder().Record(context.WithoutCancel(r.Context()), entry); err != nil {
				composables.TryUseLogger(r.Context()).WithError(err).Warn("action-log: failed to record request")
			}
		})
	}
}
