package middleware

import (
	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
)

// PublicPage is the stack of server-rendered routes open to anonymous
// visitors: session, request params, locale, page context and navigation.
func PublicPage(app application.Application, conf *configuration.Configuration) []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		WithSession(app.Sessions(), conf),
		RequestParams(conf),
		ProvideLocalizer(app),
		WithPageContext(app),
		NavItems(),
	}
}

// AuthenticatedPage additionally requires a signed-in session.
func AuthenticatedPage(app application.Application, conf *configuration.Configuration) []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		WithSession(app.Sessions(), conf),
		RequireAuth(),
		RequestParams(conf),
		ProvideLocalizer(app),
		WithPageContext(app),
		NavItems(),
	}
}

// TenantPage serves routes under /t/{tenant} for members of that tenant.
func TenantPage(app application.Application, conf *configuration.Configuration) []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		WithSession(app.Sessions(), conf),
		RequireAuth(),
		RequireTenant(),
		RequestParams(conf),
		ProvideLocalizer(app),
		WithPageContext(app),
		NavItems(),
	}
}
