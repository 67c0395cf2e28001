package events

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/boxoffice/pkg/types"
)

var EventsLink = types.NavigationItem{
	Name:         "NavigationLinks.Events",
	Icon:         icons.List(icons.Props{Size: "20"}),
	Href:         "/events",
	TenantScoped: true,
	Children:     nil,
}

var NavItems = []types.NavigationItem{
	EventsLink,
}
