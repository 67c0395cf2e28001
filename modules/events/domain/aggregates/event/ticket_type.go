package event

import (
	"github.com/shopspring/decimal"
)

type TicketType struct {
	id       int64
	eventID  int64
	name     string
	price    decimal.Decimal
	currency string
	quantity int
	sold     int
}

func HydrateTicketType(
	id int64,
	eventID int64,
	name string,
	price decimal.Decimal,
	currency string,
	quantity int,
	sold int,
) TicketType {
	return TicketType{
		id:       id,
		eventID:  eventID,
		name:     name,
		price:    price,
		currency: currency,
		quantity: quantity,
		sold:     sold,
	}
}

func (t TicketType) ID() int64              { return t.id }
func (t TicketType) EventID() int64         { return t.eventID }
func (t TicketType) Name() string           { return t.name }
func (t TicketType) Price() decimal.Decimal { return t.price }
func (t TicketType) Currency() string       { return t.currency }
func (t TicketType) Quantity() int          { return t.quantity }
func (t TicketType) Sold() int              { return t.sold }

func (t TicketType) WithPrice(price decimal.Decimal) TicketType {
	t.price = price
	return t
}
