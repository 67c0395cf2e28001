package backend

import (
	"github.com/iota-uz/boxoffice/modules/storefront/domain/aggregates/listing"
)

func ToDomainListing(m Listing) listing.Listing {
	tickets := make([]listing.Ticket, 0, len(m.TicketTypes))
	for _, t := range m.TicketTypes {
		tickets = append(tickets, listing.Ticket{
			Name:      t.Name,
			Price:     t.Price,
			Currency:  t.Currency,
			Available: t.Available,
		})
	}
	return listing.Hydrate(m.Slug, m.Name, m.Venue, m.StartsAt, m.PriceFrom, m.Currency, m.Available, tickets)
}
