package orders

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/boxoffice/pkg/types"
)

var OrdersLink = types.NavigationItem{
	Name:         "NavigationLinks.Orders",
	Icon:         icons.UsersThree(icons.Props{Size: "20"}),
	Href:         "/orders",
	TenantScoped: true,
	Children:     nil,
}

var NavItems = []types.NavigationItem{
	OrdersLink,
}
