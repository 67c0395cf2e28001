package storefront

import (
	"embed"

	"github.com/iota-uz/boxoffice/modules/storefront/infrastructure/backend"
	"github.com/iota-uz/boxoffice/modules/storefront/presentation/controllers"
	"github.com/iota-uz/boxoffice/modules/storefront/services"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/spotlight"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

type ModuleOptions struct {
	// Client is the anonymous backend client shared by all storefront
	// visitors. One is built from the configuration when nil.
	Client *apiclient.Client
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	client := m.options.Client
	if client == nil {
		c, err := apiclient.FromConfig(configuration.Use())
		if err != nil {
			return err
		}
		client = c
	}
	app.RegisterLocaleFiles(&LocaleFiles)
	app.RegisterServices(
		services.NewShopService(backend.NewListingRepository(), client),
	)
	app.RegisterControllers(
		controllers.NewShopAPIController(app),
		controllers.NewShopController(app),
	)
	app.QuickLinks().Add(
		spotlight.LinkTo(StorefrontLink),
	)
	return nil
}

func (m *Module) Name() string {
	return "storefront"
}
