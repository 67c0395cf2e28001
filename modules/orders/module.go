package orders

import (
	"embed"

	"github.com/iota-uz/boxoffice/modules/orders/infrastructure/backend"
	"github.com/iota-uz/boxoffice/modules/orders/presentation/controllers"
	"github.com/iota-uz/boxoffice/modules/orders/services"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/spotlight"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&LocaleFiles)
	app.RegisterServices(
		services.NewOrderService(backend.NewOrderRepository()),
	)
	app.RegisterControllers(
		controllers.NewOrdersController(app),
	)
	app.QuickLinks().Add(
		spotlight.LinkTo(OrdersLink),
	)
	return nil
}

func (m *Module) Name() string {
	return "orders"
}
