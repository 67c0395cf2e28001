package storefront

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/boxoffice/pkg/types"
)

// StorefrontLink opens the public shop of the current tenant.
var StorefrontLink = types.NavigationItem{
	Name:         "NavigationLinks.Storefront",
	Icon:         icons.Users(icons.Props{Size: "20"}),
	Href:         "/storefront",
	TenantScoped: true,
	Children:     nil,
}

var NavItems = []types.NavigationItem{
	StorefrontLink,
}
