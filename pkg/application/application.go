package application

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"reflect"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/iota-uz/boxoffice/pkg/eventbus"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/session"
	"github.com/iota-uz/boxoffice/pkg/spotlight"
	"github.com/iota-uz/boxoffice/pkg/types"
)

type ApplicationOptions struct {
	EventBus           eventbus.EventBus
	Sessions           *session.Store
	Logger             *logrus.Logger
	Bundle             *i18n.Bundle
	SupportedLanguages []string
}

// LoadBundle creates the message bundle with English as the fallback language.
func LoadBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	return bundle
}

func New(opts *ApplicationOptions) Application {
	quickLinks := &spotlight.QuickLinks{}
	sl := spotlight.New()
	sl.Register(quickLinks)

	languages := opts.SupportedLanguages
	if len(languages) == 0 {
		for _, l := range intl.Locales(nil) {
			languages = append(languages, l.Code)
		}
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle = LoadBundle()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &application{
		events:     opts.EventBus,
		sessions:   opts.Sessions,
		logger:     logger,
		bundle:     bundle,
		languages:  languages,
		spotlight:  sl,
		quickLinks: quickLinks,
		routes:     make(map[string]int),
		services:   make(map[reflect.Type]interface{}),
	}
}

type application struct {
	events     eventbus.EventBus
	sessions   *session.Store
	logger     *logrus.Logger
	bundle     *i18n.Bundle
	languages  []string
	spotlight  spotlight.Spotlight
	quickLinks *spotlight.QuickLinks

	// controllers keeps registration order; routes maps a key to its slot so
	// re-registering a key replaces the controller in place.
	controllers []Controller
	routes      map[string]int

	middleware   []mux.MiddlewareFunc
	hashFsAssets []*hashfs.FS
	assets       []*embed.FS
	navItems     []types.NavigationItem
	services     map[reflect.Type]interface{}
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.events
}

func (app *application) Sessions() *session.Store {
	return app.sessions
}

func (app *application) Bundle() *i18n.Bundle {
	return app.bundle
}

func (app *application) GetSupportedLanguages() []string {
	return app.languages
}

func (app *application) Spotlight() spotlight.Spotlight {
	return app.spotlight
}

func (app *application) QuickLinks() *spotlight.QuickLinks {
	return app.quickLinks
}

// Controllers returns the controllers in registration order. Routes are
// matched in that order, so /shop/api must be registered before
// /shop/{tenant}.
func (app *application) Controllers() []Controller {
	out := make([]Controller, len(app.controllers))
	copy(out, app.controllers)
	return out
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		if i, ok := app.routes[c.Key()]; ok {
			app.controllers[i] = c
			continue
		}
		app.routes[c.Key()] = len(app.controllers)
		app.controllers = append(app.controllers, c)
	}
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

func (app *application) Assets() []*embed.FS {
	return app.assets
}

func (app *application) RegisterAssets(fs ...*embed.FS) {
	app.assets = append(app.assets, fs...)
}

func (app *application) HashFsAssets() []*hashfs.FS {
	return app.hashFsAssets
}

func (app *application) RegisterHashFsAssets(fs ...*hashfs.FS) {
	app.hashFsAssets = append(app.hashFsAssets, fs...)
}

// NavItems localizes the sidebar. A missing message keeps its id as label.
func (app *application) NavItems(localizer *i18n.Localizer) []types.NavigationItem {
	return localizeNav(localizer, app.navItems)
}

func (app *application) RegisterNavItems(items ...types.NavigationItem) {
	app.navItems = append(app.navItems, items...)
}

func localizeNav(localizer *i18n.Localizer, items []types.NavigationItem) []types.NavigationItem {
	out := make([]types.NavigationItem, 0, len(items))
	for _, item := range items {
		label, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: item.Name})
		if err != nil {
			label = item.Name
		}
		item.Name = label
		item.Children = localizeNav(localizer, item.Children)
		out = append(out, item)
	}
	return out
}

// RegisterModules registers every module in order and stops at the first failure.
func (app *application) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.Register(app); err != nil {
			return fmt.Errorf("module %s: %w", m.Name(), err)
		}
		app.logger.WithField("module", m.Name()).Debug("module registered")
	}
	return nil
}

// RegisterLocaleFiles parses every message file of the embedded trees. The
// trees are compiled in, so a broken file is a programming error.
func (app *application) RegisterLocaleFiles(trees ...*embed.FS) {
	for _, tree := range trees {
		err := fs.WalkDir(tree, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := tree.ReadFile(p)
			if err != nil {
				return err
			}
			_, err = app.bundle.ParseMessageFileBytes(data, path.Base(p))
			return err
		})
		if err != nil {
			panic(fmt.Errorf("locale files: %w", err))
		}
	}
}

// RegisterServices stores each service under its pointed-to type.
func (app *application) RegisterServices(services ...interface{}) {
	for _, svc := range services {
		app.services[reflect.TypeOf(svc).Elem()] = svc
	}
}

// Service looks a service up by the zero value of its type and panics when
// no module registered it.
func (app *application) Service(service interface{}) interface{} {
	t := reflect.TypeOf(service)
	svc, ok := app.services[t]
	if !ok {
		panic(fmt.Sprintf("service %s not found", t.Name()))
	}
	return svc
}

func (app *application) Services() map[reflect.Type]interface{} {
	return app.services
}
