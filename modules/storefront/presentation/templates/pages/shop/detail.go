package shop

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/modules/storefront/domain/aggregates/listing"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/currency"
	"github.com/iota-uz/boxoffice/pkg/intl"
)

func startsAt(ctx context.Context, l listing.Listing) string {
	if p, ok := composables.TryUsePageCtx(ctx); ok {
		return p.FormatDateTime(l.StartsAt())
	}
	return l.StartsAt().UTC().Format(time.RFC1123)
}

type DetailProps struct {
	Tenant  string
	Listing listing.Listing
}

func ticketRows(ctx context.Context, tickets []listing.Ticket) string {
	soldOut := intl.T(ctx, "Shop.SoldOut", "Sold out")
	var b strings.Builder
	for _, t := range tickets {
		left := fmt.Sprint(t.Available)
		if t.SoldOut() {
			left = soldOut
		}
		b.WriteString(`<tr data-role="ticket"><td class="py-1">` + templ.EscapeString(t.Name) +
			`</td><td class="py-1 text-right">` + templ.EscapeString(currency.Format(t.Price, t.Currency)) +
			`</td><td class="py-1 text-right">` + templ.EscapeString(left) + `</td></tr>`)
	}
	return b.String()
}

func Detail(props *DetailProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		l := props.Listing
		layout := layouts.Public(layouts.BaseProps{Title: l.Name()})
		body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			back := intl.T(ctx, "Shop.Back", "All events")
			html := `<a class="text-sm text-blue-700" href="` + templ.EscapeString(IndexHref(props.Tenant)) + `">` + templ.EscapeString(back) + `</a>` +
				`<h1 class="mt-2 text-2xl font-semibold" data-role="listing-name">` + templ.EscapeString(l.Name()) + `</h1>` +
				`<p class="text-gray-600">` + templ.EscapeString(startsAt(ctx, l)) + ` · ` + templ.EscapeString(l.Venue()) + `</p>`
			if l.SoldOut() {
				html += `<p class="mt-2 font-medium text-red-700" data-role="sold-out">` + templ.EscapeString(intl.T(ctx, "Shop.SoldOut", "Sold out")) + `</p>`
			}
			html += `<table class="mt-4 w-full text-sm"><thead><tr>` +
				`<th class="text-left">` + templ.EscapeString(intl.T(ctx, "Shop.Tickets.Name", "Ticket")) + `</th>` +
				`<th class="text-right">` + templ.EscapeString(intl.T(ctx, "Shop.Tickets.Price", "Price")) + `</th>` +
				`<th class="text-right">` + templ.EscapeString(intl.T(ctx, "Shop.Columns.Available", "Available")) + `</th>` +
				`</tr></thead><tbody>` + ticketRows(ctx, l.Tickets()) + `</tbody></table>`
			_, err := io.WriteString(w, html)
			return err
		})
		return layouts.Render(ctx, w, layout, body)
	})
}
