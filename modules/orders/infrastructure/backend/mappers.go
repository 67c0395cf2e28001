package backend

import (
	"github.com/iota-uz/boxoffice/modules/orders/domain/aggregates/order"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

func ToDomainOrder(m Order) order.Order {
	return order.Hydrate(
		m.ID,
		m.Reference,
		order.Customer{Name: m.CustomerName, Email: m.CustomerEmail},
		order.Status(m.Status),
		m.Total,
		m.Currency,
		m.EventID,
		m.TicketsCount,
		m.CreatedAt,
	)
}

func ToDomainPage(p datatable.Page[Order]) datatable.Page[order.Order] {
	items := make([]order.Order, 0, len(p.Items))
	for _, m := range p.Items {
		items = append(items, ToDomainOrder(m))
	}
	return datatable.Page[order.Order]{
		Items:       items,
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		PageSize:    p.PageSize,
		TotalCount:  p.TotalCount,
	}
}
