package backend

import (
	"time"

	"github.com/shopspring/decimal"
)

type Event struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	Status      string    `json:"status"`
	Capacity    int       `json:"capacity"`
	TicketsSold int       `json:"tickets_sold"`
	Currency    string    `json:"currency"`
}

type TicketType struct {
	ID       int64           `json:"id"`
	EventID  int64           `json:"event_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Quantity int             `json:"quantity"`
	Sold     int             `json:"sold"`
}

// envelope is the single-resource wrapper some backend endpoints use.
type envelope[T any] struct {
	Data T `json:"data"`
}
