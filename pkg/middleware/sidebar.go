package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/constants"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/types"
)

// filterItems keeps the items the visitor may see and resolves tenant links.
// Tenant scoped items are hidden until a tenant is chosen.
func filterItems(items []types.NavigationItem, authenticated bool, tenant string) []types.NavigationItem {
	out := make([]types.NavigationItem, 0, len(items))
	for _, item := range items {
		if !item.Public && !authenticated {
			continue
		}
		if item.TenantScoped && tenant == "" {
			continue
		}
		item.Href = item.ResolveHref(tenant)
		item.TenantScoped = false
		item.Children = filterItems(item.Children, authenticated, tenant)
		out = append(out, item)
	}
	return out
}

// getEnabledNavItems drops empty groups and flattens groups with one child.
func getEnabledNavItems(items []types.NavigationItem) []types.NavigationItem {
	var out []types.NavigationItem
	for _, item := range items {
		if item.Href != "" && len(item.Children) == 0 {
			out = append(out, item)
			continue
		}
		children := getEnabledNavItems(item.Children)
		switch len(children) {
		case 0:
		case 1:
			out = append(out, children[0])
		default:
			item.Children = children
			out = append(out, item)
		}
	}
	return out
}

func NavItems() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				app, err := application.UseApp(r.Context())
				if err != nil {
					panic(err.Error())
				}
				localizer, ok := intl.UseLocalizer(r.Context())
				if !ok {
					panic("localizer not found in context")
				}

				authenticated := false
				tenant := mux.Vars(r)["tenant"]
				if s, err := composables.UseSession(r.Context()); err == nil {
					authenticated = s.Authenticated()
					if tenant == "" {
						tenant = s.Tenant()
					}
				}

				items := getEnabledNavItems(filterItems(app.NavItems(localizer), authenticated, tenant))
				ctx := context.WithValue(r.Context(), constants.NavItemsKey, items)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}
