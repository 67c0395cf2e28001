package modules

import (
	"slices"

	"github.com/go-faster/errors"

	"github.com/iota-uz/boxoffice/modules/core"
	"github.com/iota-uz/boxoffice/modules/events"
	"github.com/iota-uz/boxoffice/modules/logging"
	"github.com/iota-uz/boxoffice/modules/orders"
	"github.com/iota-uz/boxoffice/modules/storefront"
	"github.com/iota-uz/boxoffice/pkg/application"
)

var (
	// BuiltInModules in registration order: events resolves the order
	// service and logging subscribes to core and events.
	BuiltInModules = []application.Module{
		core.NewModule(),
		orders.NewModule(),
		events.NewModule(),
		storefront.NewModule(nil),
		logging.NewModule(),
	}

	NavLinks = slices.Concat(
		core.NavItems,
		events.NavItems,
		orders.NavItems,
		storefront.NavItems,
		logging.NavItems,
	)
)

// Load registers modules in order and stops at the first failure.
func Load(app application.Application, mods ...application.Module) error {
	for _, m := range mods {
		if err := m.Register(app); err != nil {
			return errors.Wrapf(err, "register module %s", m.Name())
		}
	}
	return nil
}
