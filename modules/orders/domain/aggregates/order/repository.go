package order

import (
	"context"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

// SortableFields are the columns the backend accepts in ?sort=.
var SortableFields = []string{"reference", "total", "created_at"}

type Repository interface {
	GetPaginated(ctx context.Context, tenant string, q apiclient.PageQuery) (datatable.Page[Order], error)
}
