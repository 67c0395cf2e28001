package shop

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/modules/storefront/domain/aggregates/listing"
	"github.com/iota-uz/boxoffice/pkg/currency"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/intl"
)


func IndexHref(tenant string) string {
	return "/shop/" + url.PathEscape(tenant)
}

func DetailHref(tenant, slug string) string {
	return IndexHref(tenant) + "/events/" + url.PathEscape(slug)
}

func availability(soldOut string, available int) templ.Component {
	if available <= 0 {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, `<span class="text-red-700" data-role="sold-out">`+templ.EscapeString(soldOut)+`</span>`)
			return err
		})
	}
	return datatable.Text(fmt.Sprint(available))
}

// Columns are the public event listing columns.
func Columns(ctx context.Context, tenant string) datatable.ColumnsFunc[listing.Listing] {
	name := intl.T(ctx, "Shop.Columns.Name", "Event")
	date := intl.T(ctx, "Shop.Columns.StartsAt", "Date")
	venue := intl.T(ctx, "Shop.Columns.Venue", "Venue")
	from := intl.T(ctx, "Shop.Columns.PriceFrom", "From")
	available := intl.T(ctx, "Shop.Columns.Available", "Available")
	soldOut := intl.T(ctx, "Shop.SoldOut", "Sold out")
	return func(datatable.ColumnContext) []datatable.Column[listing.Listing] {
		return []datatable.Column[listing.Listing]{
			{
				ID:     "name",
				Header: datatable.SortHeader(name, "name"),
				Cell: func(l listing.Listing) templ.Component {
					return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
						_, err := io.WriteString(w, `<a class="text-blue-700 hover:underline" href="`+
							templ.EscapeString(DetailHref(tenant, l.Slug()))+`">`+templ.EscapeString(l.Name())+`</a>`)
						return err
					})
				},
				Sortable: true,
			},
			{
				ID:       "starts_at",
				Header:   datatable.SortHeader(date, "starts_at"),
				Cell:     func(l listing.Listing) templ.Component { return datatable.DateTime(l.StartsAt()) },
				Sortable: true,
			},
			{
				ID:     "venue",
				Header: datatable.TextHeader(venue),
				Cell:   func(l listing.Listing) templ.Component { return datatable.Text(l.Venue()) },
			},
			{
				ID:     "price_from",
				Header: datatable.TextHeader(from),
				Cell: func(l listing.Listing) templ.Component {
					return datatable.Text(currency.Format(l.PriceFrom(), l.Currency()))
				},
				Class: "text-right",
			},
			{
				ID:     "available",
				Header: datatable.TextHeader(available),
				Cell:   func(l listing.Listing) templ.Component { return availability(soldOut, l.Available()) },
				Class:  "text-right",
			},
		}
	}
}
