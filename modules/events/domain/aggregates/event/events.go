package event

import "github.com/shopspring/decimal"

// UpdatedEvent is published after one field of an event was saved.
type UpdatedEvent struct {
	Tenant string
	Actor  string
	Field  string
	Before Event
	After  Event
}

type TicketPriceChangedEvent struct {
	Tenant       string
	Actor        string
	EventID      int64
	TicketTypeID int64
	Old          decimal.Decimal
	New          decimal.Decimal
	Currency     string
}
