package backend

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the backend JSON representation of an order.
type Order struct {
	ID            int64           `json:"id"`
	Reference     string          `json:"reference"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Status        string          `json:"status"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	EventID       int64           `json:"event_id"`
	TicketsCount  int             `json:"tickets_count"`
	CreatedAt     time.Time       `json:"created_at"`
}
