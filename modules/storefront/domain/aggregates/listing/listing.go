// Package listing is the public view of a published event.
package listing

import (
	"time"

	"github.com/shopspring/decimal"
)

type Ticket struct {
	Name      string
	Price     decimal.Decimal
	Currency  string
	Available int
}

func (t Ticket) SoldOut() bool {
	return t.Available <= 0
}

type Listing struct {
	slug      string
	name      string
	venue     string
	startsAt  time.Time
	priceFrom decimal.Decimal
	currency  string
	available int
	tickets   []Ticket
}

func Hydrate(
	slug string,
	name string,
	venue string,
	startsAt time.Time,
	priceFrom decimal.Decimal,
	currency string,
	available int,
	tickets []Ticket,
) Listing {
	return Listing{
		slug:      slug,
		name:      name,
		venue:     venue,
		startsAt:  startsAt,
		priceFrom: priceFrom,
		currency:  currency,
		available: available,
		tickets:   tickets,
	}
}

func (l Listing) Slug() string               { return l.slug }
func (l Listing) Name() string               { return l.name }
func (l Listing) Venue() string              { return l.venue }
func (l Listing) StartsAt() time.Time        { return l.startsAt }
func (l Listing) PriceFrom() decimal.Decimal { return l.priceFrom }
func (l Listing) Currency() string           { return l.currency }
func (l Listing) Available() int             { return l.available }
func (l Listing) Tickets() []Ticket          { return l.tickets }
func (l Listing) SoldOut() bool              { return l.available <= 0 }
