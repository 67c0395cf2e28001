package types

import (
	"github.com/a-h/templ"
)

type NavigationItem struct {
	Name     string
	Href     string
	Children []NavigationItem
	Icon     templ.Component
	// TenantScoped items are prefixed with /t/{tenant} when rendered.
	TenantScoped bool
	// Public items are shown without an authenticated session.
	Public bool
}

// ResolveHref returns the link for the given tenant slug.
func (n NavigationItem) ResolveHref(tenant string) string {
	if n.TenantScoped && tenant != "" {
		return "/t/" + tenant + n.Href
	}
	return n.Href
}
