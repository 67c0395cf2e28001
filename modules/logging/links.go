package logging

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/boxoffice/pkg/types"
)

// ActivityLink opens the audit trail of the current tenant.
var ActivityLink = types.NavigationItem{
	Name:         "NavigationLinks.Activity",
	Href:         "/activity",
	Icon:         icons.List(icons.Props{Size: "20"}),
	TenantScoped: true,
}

var NavItems = []types.NavigationItem{ActivityLink}
