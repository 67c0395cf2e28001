package backend

import (
	"github.com/iota-uz/boxoffice/modules/events/domain/aggregates/event"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

func ToDomainEvent(m Event) event.Event {
	return event.Hydrate(
		m.ID,
		m.Slug,
		m.Name,
		m.Venue,
		m.StartsAt,
		event.Status(m.Status),
		m.Capacity,
		m.TicketsSold,
		m.Currency,
	)
}

func ToDBEvent(e event.Event) Event {
	return Event{
		ID:          e.ID(),
		Slug:        e.Slug(),
		Name:        e.Name(),
		Venue:       e.Venue(),
		StartsAt:    e.StartsAt(),
		Status:      string(e.Status()),
		Capacity:    e.Capacity(),
		TicketsSold: e.Sold(),
		Currency:    e.Currency(),
	}
}

func ToDomainTicketType(m TicketType) event.TicketType {
	return event.HydrateTicketType(m.ID, m.EventID, m.Name, m.Price, m.Currency, m.Quantity, m.Sold)
}

func ToDBTicketType(t event.TicketType) TicketType {
	return TicketType{
		ID:       t.ID(),
		EventID:  t.EventID(),
		Name:     t.Name(),
		Price:    t.Price(),
		Currency: t.Currency(),
		Quantity: t.Quantity(),
		Sold:     t.Sold(),
	}
}

func mapPage[M, D any](p datatable.Page[M], fn func(M) D) datatable.Page[D] {
	items := make([]D, 0, len(p.Items))
	for _, m := range p.Items {
		items = append(items, fn(m))
	}
	return datatable.Page[D]{
		Items:       items,
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		PageSize:    p.PageSize,
		TotalCount:  p.TotalCount,
	}
}
