package dashboard

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/session"
)

type IndexProps struct {
	User   *session.Identity
	Tenant session.TenantRef
}

type card struct {
	titleID, titleDef string
	href              string
}

func content(props *IndexProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		greeting := intl.T(ctx, "Dashboard.Welcome", "Welcome back")
		if _, err := io.WriteString(w, `<h1 class="text-xl font-semibold">`+templ.EscapeString(greeting)+`, `+templ.EscapeString(props.User.Name)+`</h1>`+
			`<p class="mb-6 text-gray-500" data-role="tenant">`+templ.EscapeString(props.Tenant.Name)+`</p><div class="grid grid-cols-1 gap-4 md:grid-cols-3">`); err != nil {
			return err
		}
		base := "/t/" + props.Tenant.Slug
		cards := []card{
			{"NavigationLinks.Events", "Events", base + "/events"},
			{"NavigationLinks.Orders", "Orders", base + "/orders"},
			{"NavigationLinks.Storefront", "Storefront", "/shop/" + props.Tenant.Slug},
		}
		for _, c := range cards {
			if _, err := io.WriteString(w, `<a class="rounded-lg border bg-white p-6 hover:border-indigo-500" href="`+templ.EscapeString(c.href)+`">`+
				templ.EscapeString(intl.T(ctx, c.titleID, c.titleDef))+`</a>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func Index(props *IndexProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout := layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: intl.T(ctx, "NavigationLinks.Dashboard", "Dashboard")}})
		return layouts.Render(ctx, w, layout, content(props))
	})
}
