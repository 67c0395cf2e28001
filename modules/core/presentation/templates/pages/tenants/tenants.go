package tenants

import (
	"context"
	"io"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/session"
)

type IndexProps struct {
	Tenants []session.TenantRef
	Current string
}

func list(props *IndexProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1 class="mb-4 text-xl font-semibold">`+templ.EscapeString(intl.T(ctx, "Tenants.Title", "Choose an organizer"))+`</h1>`); err != nil {
			return err
		}
		if len(props.Tenants) == 0 {
			_, err := io.WriteString(w, `<p class="text-gray-500" data-role="empty">`+templ.EscapeString(intl.T(ctx, "Tenants.Empty", "Your account is not a member of any organizer."))+`</p>`)
			return err
		}
		if _, err := io.WriteString(w, `<ul class="grid grid-cols-1 gap-3 md:grid-cols-3">`); err != nil {
			return err
		}
		for _, t := range props.Tenants {
			class := "flex items-center gap-2 rounded-lg border bg-white p-4 hover:border-indigo-500"
			if t.Slug == props.Current {
				class += " border-indigo-500"
			}
			if _, err := io.WriteString(w, `<li><a class="`+class+`" data-tenant="`+templ.EscapeString(t.Slug)+`" href="/t/`+templ.EscapeString(t.Slug)+`/events">`); err != nil {
				return err
			}
			if err := icons.Buildings(icons.Props{Size: "20"}).Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `<span>`+templ.EscapeString(t.Name)+`</span></a></li>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}

func Index(props *IndexProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout := layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: intl.T(ctx, "Tenants.Title", "Choose an organizer")}})
		return layouts.Render(ctx, w, layout, list(props))
	})
}
