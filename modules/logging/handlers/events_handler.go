package handlers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/boxoffice/modules/events/domain/aggregates/event"
	"github.com/iota-uz/boxoffice/modules/logging/domain/entities/activity"
	loggingservices "github.com/iota-uz/boxoffice/modules/logging/services"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/currency"
)

var auditedFields = []string{event.FieldName, event.FieldVenue, event.FieldCapacity, event.FieldStatus}

// EventChangesHandler audits saved event fields and ticket prices.
type EventChangesHandler struct {
	service activityRecorder
	logger  *logrus.Logger
}

func NewEventChangesHandler(service activityRecorder) *EventChangesHandler {
	return &EventChangesHandler{service: service, logger: configuration.Use().Logger()}
}

func RegisterEventChangeHandlers(app application.Application) {
	handler := NewEventChangesHandler(app.Service(loggingservices.ActivityService{}).(*loggingservices.ActivityService))
	app.EventPublisher().Subscribe(handler.onEventUpdated)
	app.EventPublisher().Subscribe(handler.onTicketPriceChanged)
}

func snapshot(e event.Event) map[string]string {
	out := make(map[string]string, len(auditedFields))
	for _, f := range auditedFields {
		if v, err := e.Field(f); err == nil {
			out[f] = v
		}
	}
	return out
}

func (h *EventChangesHandler) warn(err error, subject string) {
	if h.logger != nil {
		h.logger.WithError(err).WithField("subject", subject).Warn("failed to record event activity")
	}
}

func (h *EventChangesHandler) onEventUpdated(e *event.UpdatedEvent) {
	subject := fmt.Sprintf("event %d", e.After.ID())
	diff, summary, err := loggingservices.Diff(snapshot(e.Before), snapshot(e.After))
	if err != nil {
		h.warn(err, subject)
		return
	}
	if summary == "" {
		return
	}
	entry := &activity.Entry{
		Kind:    activity.KindChange,
		Tenant:  e.Tenant,
		Actor:   e.Actor,
		Subject: subject + " (" + e.After.Name() + ")",
		Summary: summary,
		Diff:    diff,
	}
	if err := h.service.Record(context.Background(), entry); err != nil {
		h.warn(err, subject)
	}
}

func (h *EventChangesHandler) onTicketPriceChanged(e *event.TicketPriceChangedEvent) {
	subject := fmt.Sprintf("ticket type %d", e.TicketTypeID)
	diff, summary, err := loggingservices.Diff(
		map[string]string{"price": currency.Format(e.Old, e.Currency)},
		map[string]string{"price": currency.Format(e.New, e.Currency)},
	)
	if err != nil {
		h.warn(err, subject)
		return
	}
	if summary == "" {
		return
	}
	entry := &activity.Entry{
		Kind:    activity.KindChange,
		Tenant:  e.Tenant,
		Actor:   e.Actor,
		Subject: fmt.Sprintf("%s of event %d", subject, e.EventID),
		Summary: summary,
		Diff:    diff,
	}
	if err := h.service.Record(context.Background(), entry); err != nil {
		h.warn(err, subject)
	}
}
