package application

import (
	"testing"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/iota-uz/boxoffice/pkg/types"
)

type stubController struct {
	key, tag string
}

func (c stubController) Key() string          { return c.key }
func (c stubController) Register(*mux.Router) {}

type ticketService struct{}

func TestRegisterControllers_KeepsOrder(t *testing.T) {
	app := New(&ApplicationOptions{})
	app.RegisterControllers(
		stubController{key: "/shop/api/{tenant}/events", tag: "api"},
		stubController{key: "/shop/{tenant}", tag: "ui"},
	)
	app.RegisterControllers(stubController{key: "/shop/api/{tenant}/events", tag: "api-v2"})

	got := app.Controllers()
	require.Len(t, got, 2)
	require.Equal(t, "api-v2", got[0].(stubController).tag)
	require.Equal(t, "/shop/{tenant}", got[1].Key())
}

func TestService(t *testing.T) {
	app := New(&ApplicationOptions{})
	svc := &ticketService{}
	app.RegisterServices(svc)
	require.Same(t, svc, app.Service(ticketService{}).(*ticketService))
	require.Panics(t, func() { app.Service(stubController{}) })
}

func TestNew_Defaults(t *testing.T) {
	app := New(&ApplicationOptions{})
	require.Equal(t, []string{"en", "zh"}, app.GetSupportedLanguages())
	require.NotNil(t, app.Logger())
	require.NotNil(t, app.Bundle())
}

func TestNavItems_Localized(t *testing.T) {
	bundle := LoadBundle()
	require.NoError(t, bundle.AddMessages(language.Chinese, &i18n.Message{ID: "NavigationLinks.Events", Other: "活动"}))
	app := New(&ApplicationOptions{Bundle: bundle})
	app.RegisterNavItems(types.NavigationItem{
		Name:         "NavigationLinks.Events",
		Href:         "/events",
		TenantScoped: true,
		Children:     []types.NavigationItem{{Name: "NavigationLinks.Unknown", Href: "/x"}},
	})

	items := app.NavItems(i18n.NewLocalizer(bundle, "zh"))
	require.Len(t, items, 1)
	require.Equal(t, "活动", items[0].Name)
	require.Equal(t, "/t/acme/events", items[0].ResolveHref("acme"))
	require.Equal(t, "NavigationLinks.Unknown", items[0].Children[0].Name)
}
