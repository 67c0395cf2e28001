package events

import (
	"embed"

	"github.com/iota-uz/boxoffice/modules/events/infrastructure/backend"
	"github.com/iota-uz/boxoffice/modules/events/presentation/controllers"
	"github.com/iota-uz/boxoffice/modules/events/services"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/spotlight"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

// Module depends on the orders module for the orders of an event.
type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&LocaleFiles)
	eventService := services.NewEventService(backend.NewEventRepository(), app.EventPublisher())
	app.RegisterServices(eventService)
	app.RegisterControllers(
		controllers.NewEventsController(app),
	)
	app.QuickLinks().Add(
		spotlight.LinkTo(EventsLink),
	)
	app.Spotlight().Register(&eventsDataSource{service: eventService})
	return nil
}

func (m *Module) Name() string {
	return "events"
}
