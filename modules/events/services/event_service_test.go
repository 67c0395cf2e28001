package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/modules/events/domain/aggregates/event"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/eventbus"
)

type stubRepo struct {
	updated     []event.Event
	ticketSaved []event.TicketType
	queries     []apiclient.PageQuery
	err         error
}

func (r *stubRepo) GetPaginated(_ context.Context, _ string, q apiclient.PageQuery) (datatable.Page[event.Event], error) {
	r.queries = append(r.queries, q)
	return datatable.Page[event.Event]{Items: []event.Event{}, CurrentPage: 1, LastPage: 1}, r.err
}

func (r *stubRepo) GetByID(context.Context, string, int64) (event.Event, error) {
	return gala, r.err
}

func (r *stubRepo) Update(_ context.Context, _ string, _, after event.Event) (event.Event, error) {
	if r.err != nil {
		return event.Event{}, r.err
	}
	r.updated = append(r.updated, after)
	return after, nil
}

func (r *stubRepo) TicketTypes(context.Context, string, int64, apiclient.PageQuery) (datatable.Page[event.TicketType], error) {
	return datatable.Page[event.TicketType]{}, r.err
}

func (r *stubRepo) UpdateTicketType(_ context.Context, _ string, _, after event.TicketType) (event.TicketType, error) {
	if r.err != nil {
		return event.TicketType{}, r.err
	}
	r.ticketSaved = append(r.ticketSaved, after)
	return after, nil
}

var gala = event.Hydrate(5, "spring-gala", "Spring Gala", "Main Hall",
	time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC), event.StatusPublished, 300, 120, "USD")

func TestNormalizeField(t *testing.T) {
	cases := []struct {
		field, in, want string
		wantErr         bool
	}{
		{event.FieldName, "  Gala  ", "Gala", false},
		{event.FieldName, "   ", "", true},
		{event.FieldCapacity, "250", "250", false},
		{event.FieldCapacity, "two", "", true},
		{event.FieldStatus, "Cancelled", "cancelled", false},
		{event.FieldStatus, "archived", "", true},
		{"slug", "x", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.field+"/"+tc.in, func(t *testing.T) {
			got, err := NormalizeField(tc.field, tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestEventService_UpdateFieldPublishes(t *testing.T) {
	bus := eventbus.NewEventPublisher(nil)
	var got []*event.UpdatedEvent
	bus.Subscribe(func(e *event.UpdatedEvent) { got = append(got, e) })

	repo := &stubRepo{}
	svc := NewEventService(repo, bus)

	saved, err := svc.UpdateField(context.Background(), "acme", gala, event.FieldVenue, " Garden Stage ")
	require.NoError(t, err)
	require.Equal(t, "Garden Stage", saved.Venue())
	require.Len(t, repo.updated, 1)

	require.Len(t, got, 1)
	require.Equal(t, "acme", got[0].Tenant)
	require.Equal(t, event.FieldVenue, got[0].Field)
	require.Equal(t, "Main Hall", got[0].Before.Venue())
	require.Equal(t, "Garden Stage", got[0].After.Venue())
}

func TestEventService_UpdateFieldBackendFailure(t *testing.T) {
	bus := eventbus.NewEventPublisher(nil)
	published := 0
	bus.Subscribe(func(*event.UpdatedEvent) { published++ })

	svc := NewEventService(&stubRepo{err: apiclient.ErrServer}, bus)
	_, err := svc.UpdateField(context.Background(), "acme", gala, event.FieldName, "Autumn Gala")
	require.ErrorIs(t, err, apiclient.ErrServer)
	require.Zero(t, published)
}

func TestEventService_GetPaginatedDropsUnknownSort(t *testing.T) {
	repo := &stubRepo{}
	svc := NewEventService(repo, eventbus.NewEventPublisher(nil))

	_, err := svc.GetPaginated(context.Background(), "acme", apiclient.PageQuery{Page: 1, Sort: "venue"})
	require.NoError(t, err)
	require.Empty(t, repo.queries[0].Sort)
}

func TestNormalizePrice(t *testing.T) {
	got, err := NormalizePrice("$1,234.567", "USD")
	require.NoError(t, err)
	require.Equal(t, "1234.56", got)

	got, err = NormalizePrice("12,50", "BRL")
	require.NoError(t, err)
	require.Equal(t, "12,50", got)

	_, err = NormalizePrice("-5", "USD")
	require.Error(t, err)

	_, err = NormalizePrice("abc", "USD")
	require.Error(t, err)
}

func TestPriceText_CommaCurrencyRoundTrips(t *testing.T) {
	stored := decimal.RequireFromString("12.5")
	text := PriceText(stored, "BRL")
	require.Equal(t, "12,50", text)

	again, err := NormalizePrice(text, "BRL")
	require.NoError(t, err)
	require.Equal(t, text, again)

	price, err := ParsePrice(text, "BRL")
	require.NoError(t, err)
	require.True(t, stored.Equal(price), price.String())
}

func TestEventService_UpdateTicketPrice(t *testing.T) {
	bus := eventbus.NewEventPublisher(nil)
	var got *event.TicketPriceChangedEvent
	bus.Subscribe(func(e *event.TicketPriceChangedEvent) { got = e })

	repo := &stubRepo{}
	svc := NewEventService(repo, bus)
	vip := event.HydrateTicketType(9, 5, "VIP", decimal.RequireFromString("80"), "USD", 50, 10)

	saved, err := svc.UpdateTicketPrice(context.Background(), "acme", vip, "95.5")
	require.NoError(t, err)
	require.Equal(t, "95.5", saved.Price().String())
	require.NotNil(t, got)
	require.Equal(t, int64(9), got.TicketTypeID)
	require.Equal(t, "80", got.Old.String())
	require.Equal(t, "95.5", got.New.String())
}
