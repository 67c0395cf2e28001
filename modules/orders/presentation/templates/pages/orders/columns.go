package orders

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/modules/orders/domain/aggregates/order"
	"github.com/iota-uz/boxoffice/pkg/currency"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/intl"
)


var statusClass = map[order.Status]string{
	order.StatusPending:   "bg-yellow-100 text-yellow-800",
	order.StatusPaid:      "bg-green-100 text-green-800",
	order.StatusRefunded:  "bg-gray-100 text-gray-700",
	order.StatusCancelled: "bg-red-100 text-red-800",
}

// StatusBadge renders the localized order status.
func StatusBadge(ctx context.Context, s order.Status) templ.Component {
	label := intl.T(ctx, "Orders.Status."+string(s), string(s))
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<span class="rounded px-2 py-0.5 text-xs `+statusClass[s]+`" data-status="`+
			templ.EscapeString(string(s))+`">`+templ.EscapeString(label)+`</span>`)
		return err
	})
}

// Columns are the order table columns. Labels are resolved with ctx once,
// the returned factory is pure.
func Columns(ctx context.Context) datatable.ColumnsFunc[order.Order] {
	reference := intl.T(ctx, "Orders.Columns.Reference", "Reference")
	customer := intl.T(ctx, "Orders.Columns.Customer", "Customer")
	status := intl.T(ctx, "Orders.Columns.Status", "Status")
	total := intl.T(ctx, "Orders.Columns.Total", "Total")
	created := intl.T(ctx, "Orders.Columns.CreatedAt", "Created")
	badges := make(map[order.Status]templ.Component, len(statusClass))
	for s := range statusClass {
		badges[s] = StatusBadge(ctx, s)
	}
	return func(datatable.ColumnContext) []datatable.Column[order.Order] {
		return []datatable.Column[order.Order]{
			{
				ID:       "reference",
				Header:   datatable.SortHeader(reference, "reference"),
				Cell:     func(o order.Order) templ.Component { return datatable.Text(o.Reference()) },
				Sortable: true,
				Class:    "font-mono",
			},
			{
				ID:     "customer",
				Header: datatable.TextHeader(customer),
				Cell: func(o order.Order) templ.Component {
					c := o.Customer()
					if c.Email == "" {
						return datatable.Text(c.Name)
					}
					return datatable.Text(c.Name + " <" + c.Email + ">")
				},
			},
			{
				ID:     "status",
				Header: datatable.TextHeader(status),
				Cell: func(o order.Order) templ.Component {
					if b, ok := badges[o.Status()]; ok {
						return b
					}
					return datatable.Text(string(o.Status()))
				},
			},
			{
				ID:       "total",
				Header:   datatable.SortHeader(total, "total"),
				Cell:     func(o order.Order) templ.Component { return datatable.Text(currency.Format(o.Total(), o.Currency())) },
				Sortable: true,
				Class:    "text-right tabular-nums",
			},
			{
				ID:       "created_at",
				Header:   datatable.SortHeader(created, "created_at"),
				Cell:     func(o order.Order) templ.Component { return datatable.DateTime(o.CreatedAt()) },
				Sortable: true,
			},
		}
	}
}
