package controllers

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/components/tables"
	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/modules/storefront/domain/aggregates/listing"
	"github.com/iota-uz/boxoffice/modules/storefront/presentation/templates/pages/shop"
	"github.com/iota-uz/boxoffice/modules/storefront/services"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/middleware"
)

// TableID is the id of the public listing table.
const TableID = "shop"

type ShopController struct {
	app         application.Application
	shopService *services.ShopService
	basePath    string
}

func NewShopController(app application.Application) application.Controller {
	return &ShopController{
		app:         app,
		shopService: app.Service(services.ShopService{}).(*services.ShopService),
		basePath:    "/shop/{tenant}",
	}
}

func (c *ShopController) Key() string {
	return c.basePath
}

func (c *ShopController) Register(r *mux.Router) {
	conf := configuration.Use()
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.PublicPage(c.app, conf)...)
	router.Use(middleware.PublicTenant())
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/events/{slug}", c.Detail).Methods(http.MethodGet)

	admin := r.PathPrefix("/t/{tenant}/storefront").Subrouter()
	admin.Use(middleware.TenantPage(c.app, conf)...)
	admin.HandleFunc("", c.Open).Methods(http.MethodGet)
}

// Open sends a tenant member to the public shop of that tenant.
func (c *ShopController) Open(w http.ResponseWriter, r *http.Request) {
	tenant, err := composables.UseTenant(r.Context())
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, shop.IndexHref(tenant), http.StatusFound)
}

func (c *ShopController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, err := composables.UseTenant(ctx)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	page, err := tables.NewPage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	table, err := tables.Mount(page, tables.Spec[listing.Listing]{
		ID:      TableID,
		Columns: shop.Columns(ctx, tenant),
		Fetch: func(ctx context.Context, q apiclient.PageQuery) (datatable.Page[listing.Listing], error) {
			return c.shopService.GetPaginated(ctx, tenant, q)
		},
		PerPage: configuration.Use().Storefront.PageSize,
		Params:  mux.Vars(r),
	})
	if err != nil {
		layouts.WriteBackendError(w, r, err)
		return
	}
	props := &shop.IndexProps{Tenant: tenant, Table: table.Component(), ReplaceURL: page.ReplaceURL(w)}
	templ.Handler(shop.Index(props)).ServeHTTP(w, r)
}

func (c *ShopController) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, err := composables.UseTenant(ctx)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	l, err := c.shopService.GetBySlug(ctx, tenant, mux.Vars(r)["slug"])
	if err != nil {
		layouts.WriteBackendError(w, r, err)
		return
	}
	templ.Handler(shop.Detail(&shop.DetailProps{Tenant: tenant, Listing: l})).ServeHTTP(w, r)
}
