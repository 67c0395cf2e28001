package core

import (
	"embed"

	"github.com/iota-uz/boxoffice/internal/assets"
	"github.com/iota-uz/boxoffice/modules/core/infrastructure/backend"
	"github.com/iota-uz/boxoffice/modules/core/presentation/controllers"
	"github.com/iota-uz/boxoffice/modules/core/services"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/spotlight"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

// Module owns sign-in, tenant selection, locale switching, spotlight and the
// shared data table endpoints every other module mounts tables on.
type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&LocaleFiles)
	app.RegisterServices(
		services.NewAuthService(backend.NewAuthRepository(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewHealthController(app),
		controllers.NewDashboardController(app),
		controllers.NewLoginController(app),
		controllers.NewLogoutController(app),
		controllers.NewLocaleController(app),
		controllers.NewSpotlightController(app),
		controllers.NewDataTableController(app),
	)
	app.RegisterHashFsAssets(assets.HashFS)
	app.QuickLinks().Add(
		spotlight.LinkTo(DashboardLink),
		spotlight.LinkTo(TenantsLink),
		spotlight.LinkTo(LoginLink),
	)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
