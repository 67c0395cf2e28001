package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/boxoffice/modules/core/services"
	"github.com/iota-uz/boxoffice/modules/logging/domain/entities/activity"
	loggingservices "github.com/iota-uz/boxoffice/modules/logging/services"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
)

type activityRecorder interface {
	Record(ctx context.Context, entry *activity.Entry) error
}

type SessionEventsHandler struct {
	app     application.Application
	service activityRecorder
	logger  *logrus.Logger
}

func NewSessionEventsHandler(app application.Application, service activityRecorder) *SessionEventsHandler {
	return &SessionEventsHandler{app: app, service: service, logger: configuration.Use().Logger()}
}

func RegisterSessionEventHandlers(app application.Application) {
	handler := NewSessionEventsHandler(app, app.Service(loggingservices.ActivityService{}).(*loggingservices.ActivityService))
	app.EventPublisher().Subscribe(handler.onLoggedIn)
	app.EventPublisher().Subscribe(handler.onLoggedOut)
}

// record stores one copy of entry per tenant so every tenant the user
// belongs to sees it on its own activity page.
func (h *SessionEventsHandler) record(entry activity.Entry, tenants []string) {
	if h.service == nil {
		return
	}
	if len(tenants) == 0 {
		tenants = []string{""}
	}
	for _, tenant := range tenants {
		e := entry
		e.Tenant = tenant
		if err := h.service.Record(context.Background(), &e); err != nil && h.logger != nil {
			h.logger.WithError(err).WithField("kind", entry.Kind).Warn("failed to record session activity")
		}
	}
}

func (h *SessionEventsHandler) onLoggedIn(event *services.LoggedInEvent) {
	h.record(activity.Entry{
		Kind:      activity.KindSignIn,
		Actor:     event.Email,
		Subject:   "session " + shortID(event.SessionID),
		Summary:   "signed in",
		IP:        event.Client.IP,
		UserAgent: event.Client.UserAgent,
	}, event.Tenants)
}

func (h *SessionEventsHandler) onLoggedOut(event *services.LoggedOutEvent) {
	h.record(activity.Entry{
		Kind:      activity.KindSignOut,
		Actor:     event.Email,
		Subject:   "session " + shortID(event.SessionID),
		Summary:   "signed out",
		IP:        event.Client.IP,
		UserAgent: event.Client.UserAgent,
	}, event.Tenants)
}

// shortID keeps session ids out of the log in full.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
