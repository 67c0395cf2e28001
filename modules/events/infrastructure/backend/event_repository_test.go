package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/modules/events/domain/aggregates/event"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
)

type recorded struct {
	method      string
	path        string
	contentType string
	xsrf        string
	body        string
}

func newBackend(t *testing.T, handler http.HandlerFunc) (context.Context, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == apiclient.DefaultCSRFPath {
			http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "tok%3D", Path: "/"})
			w.WriteHeader(http.StatusNoContent)
			return
		}
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			xsrf:        r.Header.Get("X-XSRF-TOKEN"),
			body:        string(b),
		})
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	return composables.WithClient(context.Background(), client), &calls
}

var concert = event.Hydrate(5, "spring-gala", "Spring Gala", "Main Hall",
	time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC), event.StatusPublished, 300, 120, "USD")

func TestEventRepository_GetByID(t *testing.T) {
	ctx, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tenants/acme/events/5", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": ToDBEvent(concert)})
	})

	got, err := NewEventRepository().GetByID(ctx, "acme", 5)
	require.NoError(t, err)
	require.Equal(t, "Spring Gala", got.Name())
	require.Equal(t, event.StatusPublished, got.Status())
	require.Equal(t, 180, got.Remaining())
}

func TestEventRepository_UpdateSendsMergePatch(t *testing.T) {
	after, err := concert.WithField(event.FieldVenue, "Garden Stage")
	require.NoError(t, err)

	ctx, calls := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": ToDBEvent(after)})
	})

	got, err := NewEventRepository().Update(ctx, "acme", concert, after)
	require.NoError(t, err)
	require.Equal(t, "Garden Stage", got.Venue())

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	require.Equal(t, http.MethodPatch, call.method)
	require.Equal(t, "/api/tenants/acme/events/5", call.path)
	require.Equal(t, apiclient.ContentTypeMerge, call.contentType)
	require.Equal(t, "tok=", call.xsrf)
	require.JSONEq(t, `{"venue":"Garden Stage"}`, call.body)
}

func TestEventRepository_UpdateWithoutChangesSkipsBackend(t *testing.T) {
	ctx, calls := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected backend call %s %s", r.Method, r.URL.Path)
	})

	got, err := NewEventRepository().Update(ctx, "acme", concert, concert)
	require.NoError(t, err)
	require.Equal(t, concert, got)
	require.Empty(t, *calls)
}

func TestEventRepository_UpdateTicketTypePrice(t *testing.T) {
	before := event.HydrateTicketType(9, 5, "VIP", decimal.RequireFromString("80"), "USD", 50, 10)
	after := before.WithPrice(decimal.RequireFromString("95.5"))

	ctx, calls := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	got, err := NewEventRepository().UpdateTicketType(ctx, "acme", before, after)
	require.NoError(t, err)
	require.True(t, got.Price().Equal(decimal.RequireFromString("95.5")))
	require.Equal(t, "/api/tenants/acme/ticket-types/9", (*calls)[0].path)
	require.JSONEq(t, `{"price":"95.5"}`, (*calls)[0].body)
}

func TestEventRepository_ValidationError(t *testing.T) {
	after, err := concert.WithField(event.FieldName, "")
	require.NoError(t, err)

	ctx, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"The name field is required.","errors":{"name":["The name field is required."]}}`)
	})

	_, err = NewEventRepository().Update(ctx, "acme", concert, after)
	require.ErrorIs(t, err, apiclient.ErrValidation)
	se, ok := apiclient.AsStatus(err)
	require.True(t, ok)
	require.Equal(t, "The name field is required.", se.FieldError("name"))
}

func TestEventRepository_TicketTypes(t *testing.T) {
	ctx, calls := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":         []TicketType{{ID: 1, EventID: 5, Name: "General", Price: decimal.RequireFromString("25"), Currency: "USD", Quantity: 200, Sold: 80}},
			"current_page": 1, "last_page": 1, "per_page": 10, "total": 1,
		})
	})

	page, err := NewEventRepository().TicketTypes(ctx, "acme", 5, apiclient.PageQuery{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "General", page.Items[0].Name())
	require.Equal(t, "/api/tenants/acme/events/5/ticket-types", (*calls)[0].path)
}
