package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/iota-uz/boxoffice/modules/orders/domain/aggregates/order"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

func ordersPath(tenant string) string {
	return fmt.Sprintf("/api/tenants/%s/orders", url.PathEscape(tenant))
}

type OrderRepository struct{}

func NewOrderRepository() order.Repository {
	return &OrderRepository{}
}

func (r *OrderRepository) GetPaginated(ctx context.Context, tenant string, q apiclient.PageQuery) (datatable.Page[order.Order], error) {
	c, err := composables.UseClient(ctx)
	if err != nil {
		return datatable.Page[order.Order]{}, err
	}
	page, err := apiclient.GetPage[Order](ctx, c, ordersPath(tenant), q)
	if err != nil {
		return datatable.Page[order.Order]{}, errors.Wrap(err, "orders")
	}
	return ToDomainPage(page), nil
}
