package events

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/modules/events/domain/aggregates/event"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/intl"
)


var statusClass = map[event.Status]string{
	event.StatusDraft:     "bg-gray-100 text-gray-700",
	event.StatusPublished: "bg-green-100 text-green-800",
	event.StatusCancelled: "bg-red-100 text-red-800",
	event.StatusCompleted: "bg-indigo-100 text-indigo-800",
}

func StatusLabel(ctx context.Context, s event.Status) string {
	return intl.T(ctx, "Events.Status."+string(s), string(s))
}

func StatusBadge(label string, s event.Status) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<span class="rounded px-2 py-0.5 text-xs `+statusClass[s]+`" data-status="`+
			templ.EscapeString(string(s))+`">`+templ.EscapeString(label)+`</span>`)
		return err
	})
}

// DetailHref is the admin page of one event.
func DetailHref(tenant string, id int64) string {
	return fmt.Sprintf("/t/%s/events/%d", url.PathEscape(tenant), id)
}

func link(href, label string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<a class="text-indigo-600 hover:underline" href="`+templ.EscapeString(href)+`">`+templ.EscapeString(label)+`</a>`)
		return err
	})
}

func ratio(n, of int) string {
	return strconv.Itoa(n) + " / " + strconv.Itoa(of)
}

// Columns of the tenant event table.
func Columns(ctx context.Context, tenant string) datatable.ColumnsFunc[event.Event] {
	name := intl.T(ctx, "Events.Columns.Name", "Name")
	startsAt := intl.T(ctx, "Events.Columns.StartsAt", "Starts")
	venue := intl.T(ctx, "Events.Columns.Venue", "Venue")
	status := intl.T(ctx, "Events.Columns.Status", "Status")
	sold := intl.T(ctx, "Events.Columns.Sold", "Sold")
	labels := make(map[event.Status]string, len(event.Statuses))
	for _, s := range event.Statuses {
		labels[s] = StatusLabel(ctx, s)
	}
	return func(datatable.ColumnContext) []datatable.Column[event.Event] {
		return []datatable.Column[event.Event]{
			{
				ID:       "name",
				Header:   datatable.SortHeader(name, "name"),
				Cell:     func(e event.Event) templ.Component { return link(DetailHref(tenant, e.ID()), e.Name()) },
				Sortable: true,
			},
			{
				ID:       "starts_at",
				Header:   datatable.SortHeader(startsAt, "starts_at"),
				Cell:     func(e event.Event) templ.Component { return datatable.DateTime(e.StartsAt()) },
				Sortable: true,
			},
			{
				ID:     "venue",
				Header: datatable.TextHeader(venue),
				Cell:   func(e event.Event) templ.Component { return datatable.Text(e.Venue()) },
			},
			{
				ID:       "status",
				Header:   datatable.SortHeader(status, "status"),
				Cell:     func(e event.Event) templ.Component { return StatusBadge(labels[e.Status()], e.Status()) },
				Sortable: true,
			},
			{
				ID:     "sold",
				Header: datatable.TextHeader(sold),
				Cell:   func(e event.Event) templ.Component { return datatable.Text(ratio(e.Sold(), e.Capacity())) },
				Class:  "text-right tabular-nums",
			},
		}
	}
}

// TicketColumns are the ticket type columns; price renders the editable
// price cell of a row.
func TicketColumns(ctx context.Context, price func(event.TicketType) templ.Component) datatable.ColumnsFunc[event.TicketType] {
	name := intl.T(ctx, "Events.Tickets.Name", "Ticket")
	priceLabel := intl.T(ctx, "Events.Tickets.Price", "Price")
	sold := intl.T(ctx, "Events.Tickets.Sold", "Sold")
	return func(datatable.ColumnContext) []datatable.Column[event.TicketType] {
		return []datatable.Column[event.TicketType]{
			{
				ID:     "name",
				Header: datatable.TextHeader(name),
				Cell:   func(t event.TicketType) templ.Component { return datatable.Text(t.Name()) },
			},
			{
				ID:     "price",
				Header: datatable.TextHeader(priceLabel),
				Cell:   price,
			},
			{
				ID:     "sold",
				Header: datatable.TextHeader(sold),
				Cell:   func(t event.TicketType) templ.Component { return datatable.Text(ratio(t.Sold(), t.Quantity())) },
				Class:  "text-right tabular-nums",
			},
		}
	}
}
