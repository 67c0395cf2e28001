package core

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/boxoffice/pkg/types"
)

// Links outside any tenant. The dashboard lists upcoming events of every
// tenant the user belongs to; the tenant picker sets the working tenant.
var (
	DashboardLink = types.NavigationItem{
		Name: "NavigationLinks.Dashboard",
		Href: "/",
		Icon: icons.Gauge(icons.Props{Size: "20"}),
	}
	TenantsLink = types.NavigationItem{
		Name: "NavigationLinks.Tenants",
		Href: "/tenants",
		Icon: icons.Buildings(icons.Props{Size: "20"}),
	}
	// LoginLink is only offered in spotlight.
	LoginLink = types.NavigationItem{
		Name:   "Login.Title",
		Href:   "/login",
		Icon:   icons.MagnifyingGlass(icons.Props{Size: "20"}),
		Public: true,
	}
)

var NavItems = []types.NavigationItem{DashboardLink, TenantsLink}
