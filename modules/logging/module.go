package logging

import (
	"embed"

	"github.com/iota-uz/boxoffice/modules/logging/handlers"
	"github.com/iota-uz/boxoffice/modules/logging/infrastructure/persistence"
	"github.com/iota-uz/boxoffice/modules/logging/presentation/controllers"
	"github.com/iota-uz/boxoffice/modules/logging/services"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/spotlight"
)

//go:embed presentation/locales/*.json
var localeFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

// Module audits sign-ins, event changes and, when enabled, mutating
// requests. It must be registered after core and events.
type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()
	app.RegisterLocaleFiles(&localeFiles)
	app.RegisterServices(
		services.NewActivityService(
			persistence.NewActivityRepository(conf.ActivityLogSize),
			conf.Logger(),
		),
	)
	app.RegisterControllers(
		controllers.NewActivityController(app),
	)
	app.QuickLinks().Add(spotlight.LinkTo(ActivityLink))
	handlers.RegisterSessionEventHandlers(app)
	handlers.RegisterEventChangeHandlers(app)
	app.RegisterMiddleware(handlers.ActionLogMiddleware(app))
	return nil
}

func (m *Module) Name() string {
	return "logging"
}
