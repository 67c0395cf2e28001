package listing

import (
	"context"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

var SortableFields = []string{"starts_at", "name"}

type Repository interface {
	GetPaginated(ctx context.Context, tenant string, q apiclient.PageQuery) (datatable.Page[Listing], error)
	GetBySlug(ctx context.Context, tenant, slug string) (Listing, error)
}
