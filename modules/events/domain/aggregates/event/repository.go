package event

import (
	"context"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

// SortableFields are the columns the backend accepts in ?sort=.
var SortableFields = []string{"name", "starts_at", "status"}

type Repository interface {
	GetPaginated(ctx context.Context, tenant string, q apiclient.PageQuery) (datatable.Page[Event], error)
	GetByID(ctx context.Context, tenant string, id int64) (Event, error)
	// Update sends the difference between before and after.
	Update(ctx context.Context, tenant string, before, after Event) (Event, error)
	TicketTypes(ctx context.Context, tenant string, eventID int64, q apiclient.PageQuery) (datatable.Page[TicketType], error)
	UpdateTicketType(ctx context.Context, tenant string, before, after TicketType) (TicketType, error)
}
