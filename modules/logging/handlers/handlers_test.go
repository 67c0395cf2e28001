package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/modules/core/services"
	"github.com/iota-uz/boxoffice/modules/events/domain/aggregates/event"
	"github.com/iota-uz/boxoffice/modules/logging/domain/entities/activity"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/eventbus"
	"github.com/iota-uz/boxoffice/pkg/session"
)

type stubRecorder struct {
	created []*activity.Entry
}

func (s *stubRecorder) Record(_ context.Context, entry *activity.Entry) error {
	s.created = append(s.created, entry)
	return nil
}

func newApp() application.Application {
	return application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(nil),
	})
}

func TestSessionEventsHandler_RecordsSignInAndOut(t *testing.T) {
	app := newApp()
	stub := &stubRecorder{}
	handler := NewSessionEventsHandler(app, stub)
	app.EventPublisher().Subscribe(handler.onLoggedIn)
	app.EventPublisher().Subscribe(handler.onLoggedOut)

	app.EventPublisher().Publish(&services.LoggedInEvent{
		SessionID: "0123456789abcdef", UserID: 9, Email: "ann@example.com", Tenants: []string{"acme", "globex"},
	})
	app.EventPublisher().Publish(&services.LoggedOutEvent{SessionID: "0123456789abcdef", Email: "ann@example.com"})

	require.Len(t, stub.created, 3)
	require.Equal(t, activity.KindSignIn, stub.created[0].Kind)
	require.Equal(t, "ann@example.com", stub.created[0].Actor)
	require.Equal(t, "session 01234567", stub.created[0].Subject)
	require.Equal(t, "acme", stub.created[0].Tenant)
	require.Equal(t, "globex", stub.created[1].Tenant)
	require.Equal(t, activity.KindSignOut, stub.created[2].Kind)
	require.Empty(t, stub.created[2].Tenant)
}

func gala(venue string, capacity int) event.Event {
	return event.Hydrate(7, "gala", "Gala", venue, time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC), event.StatusPublished, capacity, 10, "EUR")
}

func TestEventChangesHandler_RecordsFieldDiff(t *testing.T) {
	app := newApp()
	stub := &stubRecorder{}
	handler := NewEventChangesHandler(stub)
	app.EventPublisher().Subscribe(handler.onEventUpdated)

	app.EventPublisher().Publish(&event.UpdatedEvent{
		Tenant: "acme", Actor: "ann@example.com", Field: event.FieldVenue,
		Before: gala("Hall", 100), After: gala("Garden Stage", 100),
	})

	require.Len(t, stub.created, 1)
	got := stub.created[0]
	require.Equal(t, activity.KindChange, got.Kind)
	require.Equal(t, "acme", got.Tenant)
	require.Equal(t, "event 7 (Gala)", got.Subject)
	require.Equal(t, "venue: Hall → Garden Stage", got.Summary)
	require.JSONEq(t, `[{"op":"replace","path":"/venue","value":"Garden Stage"}]`, string(got.Diff))
}

func TestEventChangesHandler_SkipsNoop(t *testing.T) {
	stub := &stubRecorder{}
	handler := NewEventChangesHandler(stub)
	handler.onEventUpdated(&event.UpdatedEvent{Tenant: "acme", Before: gala("Hall", 100), After: gala("Hall", 100)})
	require.Empty(t, stub.created)
}

func TestEventChangesHandler_RecordsPriceChange(t *testing.T) {
	stub := &stubRecorder{}
	handler := NewEventChangesHandler(stub)
	handler.onTicketPriceChanged(&event.TicketPriceChangedEvent{
		Tenant: "acme", EventID: 7, TicketTypeID: 3,
		Old: decimal.RequireFromString("80"), New: decimal.RequireFromString("95.5"), Currency: "EUR",
	})

	require.Len(t, stub.created, 1)
	require.Equal(t, "ticket type 3 of event 7", stub.created[0].Subject)
	require.Contains(t, stub.created[0].Summary, "price: ")
	require.NotEmpty(t, stub.created[0].Diff)
}

func TestActionLog_RecordsMutatingRequestsOfSignedInSessions(t *testing.T) {
	conf := &configuration.Configuration{SidCookieKey: "sid", RealIPHeader: "X-Real-IP"}
	store := session.NewStore(time.Hour, func() (*apiclient.Client, error) {
		return apiclient.New(apiclient.Options{BaseURL: "http://backend.test"})
	})
	sess, err := store.Create()
	require.NoError(t, err)
	sess.SetIdentity(&session.Identity{ID: 1, Email: "ann@example.com"})

	stub := &stubRecorder{}
	r := mux.NewRouter()
	r.Use(actionLog(store, conf, func() activityRecorder { return stub }))
	r.HandleFunc("/t/{tenant}/events/{id}/fields/{field}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/tables/{table}/next", func(http.ResponseWriter, *http.Request) {}).Methods(http.MethodPost)

	do := func(method, path string, withCookie bool) {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("X-Real-IP", "10.0.0.1")
		if withCookie {
			req.AddCookie(&http.Cookie{Name: "sid", Value: sess.ID})
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	do(http.MethodPost, "/t/acme/events/7/fields/venue", true)
	do(http.MethodGet, "/t/acme/events/7/fields/venue", true)
	do(http.MethodPost, "/tables/events/next", true)
	do(http.MethodPost, "/t/acme/events/7/fields/venue", false)

	require.Len(t, stub.created, 1)
	got := stub.created[0]
	require.Equal(t, activity.KindRequest, got.Kind)
	require.Equal(t, "acme", got.Tenant)
	require.Equal(t, "ann@example.com", got.Actor)
	require.Equal(t, http.StatusAccepted, got.Status)
	require.Equal(t, "10.0.0.1", got.IP)
	require.Equal(t, "POST /t/acme/events/7/fields/venue", got.Summary)
}
