package application

import (
	"context"
	"embed"
	"errors"
	"reflect"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/boxoffice/pkg/constants"
	"github.com/iota-uz/boxoffice/pkg/eventbus"
	"github.com/iota-uz/boxoffice/pkg/session"
	"github.com/iota-uz/boxoffice/pkg/spotlight"
	"github.com/iota-uz/boxoffice/pkg/types"
)

var ErrAppNotFound = errors.New("app not found")

type Controller interface {
	Register(r *mux.Router)
	Key() string
}

type Module interface {
	Name() string
	Register(app Application) error
}

// Application with a dynamically extendable service registry
type Application interface {
	Logger() *logrus.Logger
	EventPublisher() eventbus.EventBus
	Sessions() *session.Store
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	Assets() []*embed.FS
	HashFsAssets() []*hashfs.FS
	Bundle() *i18n.Bundle
	Spotlight() spotlight.Spotlight
	QuickLinks() *spotlight.QuickLinks
	NavItems(localizer *i18n.Localizer) []types.NavigationItem
	GetSupportedLanguages() []string

	RegisterNavItems(items ...types.NavigationItem)
	RegisterControllers(controllers ...Controller)
	RegisterHashFsAssets(fs ...*hashfs.FS)
	RegisterAssets(fs ...*embed.FS)
	RegisterLocaleFiles(fs ...*embed.FS)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...interface{})
	RegisterModules(modules ...Module) error

	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}

func WithApp(ctx context.Context, app Application) context.Context {
	return context.WithValue(ctx, constants.AppKey, app)
}

func UseApp(ctx context.Context) (Application, error) {
	app, ok := ctx.Value(constants.AppKey).(Application)
	if !ok || app == nil {
		return nil, ErrAppNotFound
	}
	return app, nil
}
