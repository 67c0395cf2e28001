package backend

import (
	"time"

	"github.com/shopspring/decimal"
)

type Ticket struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Available int             `json:"available"`
}

type Listing struct {
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Venue       string          `json:"venue"`
	StartsAt    time.Time       `json:"starts_at"`
	PriceFrom   decimal.Decimal `json:"price_from"`
	Currency    string          `json:"currency"`
	Available   int             `json:"available"`
	TicketTypes []Ticket        `json:"ticket_types,omitempty"`
}
