package services

import (
	"context"
	"slices"
	"strconv"

	"github.com/pkg/errors"

	"github.com/iota-uz/boxoffice/modules/orders/domain/aggregates/order"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

type OrderService struct {
	repo order.Repository
}

func NewOrderService(repo order.Repository) *OrderService {
	return &OrderService{repo: repo}
}

// GetPaginated lists the orders of a tenant. Unknown sort columns are
// dropped instead of being sent to the backend.
func (s *OrderService) GetPaginated(ctx context.Context, tenant string, q apiclient.PageQuery) (datatable.Page[order.Order], error) {
	if q.Sort != "" && !slices.Contains(order.SortableFields, q.Sort) {
		q.Sort, q.Direction = "", ""
	}
	page, err := s.repo.GetPaginated(ctx, tenant, q)
	if err != nil {
		return datatable.Page[order.Order]{}, errors.Wrap(err, "list orders")
	}
	return page, nil
}

// ForEvent lists the orders placed for one event.
func (s *OrderService) ForEvent(ctx context.Context, tenant string, eventID int64, q apiclient.PageQuery) (datatable.Page[order.Order], error) {
	extra := make(map[string][]string, len(q.Extra)+1)
	for k, v := range q.Extra {
		extra[k] = v
	}
	extra["event_id"] = []string{strconv.FormatInt(eventID, 10)}
	q.Extra = extra
	return s.GetPaginated(ctx, tenant, q)
}

// Each visits every order matching q, page by page.
func (s *OrderService) Each(ctx context.Context, tenant string, q apiclient.PageQuery, visit func(order.Order) error) error {
	if q.Page < 1 {
		q.Page = 1
	}
	for {
		page, err := s.GetPaginated(ctx, tenant, q)
		if err != nil {
			return err
		}
		for _, o := range page.Items {
			if err := visit(o); err != nil {
				return err
			}
		}
		if page.CurrentPage >= page.LastPage || len(page.Items) == 0 {
			return nil
		}
		q.Page = page.CurrentPage + 1
	}
}
