package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusRefunded  Status = "refunded"
	StatusCancelled Status = "cancelled"
)

type Customer struct {
	Name  string
	Email string
}

type Order struct {
	id        int64
	reference string
	customer  Customer
	status    Status
	total     decimal.Decimal
	currency  string
	eventID   int64
	tickets   int
	createdAt time.Time
}

func Hydrate(
	id int64,
	reference string,
	customer Customer,
	status Status,
	total decimal.Decimal,
	currency string,
	eventID int64,
	tickets int,
	createdAt time.Time,
) Order {
	return Order{
		id:        id,
		reference: reference,
		customer:  customer,
		status:    status,
		total:     total,
		currency:  currency,
		eventID:   eventID,
		tickets:   tickets,
		createdAt: createdAt,
	}
}

func (o Order) ID() int64              { return o.id }
func (o Order) Reference() string      { return o.reference }
func (o Order) Customer() Customer     { return o.customer }
func (o Order) Status() Status         { return o.status }
func (o Order) Total() decimal.Decimal { return o.total }
func (o Order) Currency() string       { return o.currency }
func (o Order) EventID() int64         { return o.eventID }
func (o Order) Tickets() int           { return o.tickets }
func (o Order) CreatedAt() time.Time   { return o.createdAt }
