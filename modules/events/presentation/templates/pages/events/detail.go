package events

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/modules/events/domain/aggregates/event"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/intl"
)

type DetailProps struct {
	Tenant     string
	Event      event.Event
	Fields     []templ.Component
	Tickets    templ.Component
	Orders     templ.Component
	ReplaceURL string
}

func section(w io.Writer, title string) error {
	_, err := io.WriteString(w, `<h2 class="mb-2 mt-8 text-lg font-semibold">`+templ.EscapeString(title)+`</h2>`)
	return err
}

func detail(props *DetailProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := props.Event
		if _, err := io.WriteString(w, `<div class="mb-6 flex items-baseline gap-3"><h1 class="text-xl font-semibold" data-role="event-name">`+
			templ.EscapeString(e.Name())+`</h1><span class="text-gray-500" data-role="starts-at">`); err != nil {
			return err
		}
		if err := datatable.DateTime(e.StartsAt()).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</span>`); err != nil {
			return err
		}
		if err := StatusBadge(StatusLabel(ctx, e.Status()), e.Status()).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div><div class="grid grid-cols-1 gap-4 md:grid-cols-2" data-role="fields">`); err != nil {
			return err
		}
		for _, f := range props.Fields {
			if err := f.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}
		if err := section(w, intl.T(ctx, "Events.Tickets.Title", "Tickets")); err != nil {
			return err
		}
		if err := props.Tickets.Render(ctx, w); err != nil {
			return err
		}
		if err := section(w, intl.T(ctx, "NavigationLinks.Orders", "Orders")); err != nil {
			return err
		}
		return props.Orders.Render(ctx, w)
	})
}

func Detail(props *DetailProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout := layouts.Authenticated(layouts.AuthenticatedProps{
			BaseProps: layouts.BaseProps{Title: props.Event.Name(), ReplaceURL: props.ReplaceURL},
		})
		return layouts.Render(ctx, w, layout, detail(props))
	})
}
