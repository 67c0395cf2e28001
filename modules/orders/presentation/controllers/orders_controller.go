package controllers

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/components/tables"
	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/modules/orders/domain/aggregates/order"
	"github.com/iota-uz/boxoffice/modules/orders/presentation/templates/pages/orders"
	"github.com/iota-uz/boxoffice/modules/orders/services"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/middleware"
)

// TableID is the id of the tenant order table.
const TableID = "orders"

type OrdersController struct {
	app          application.Application
	orderService *services.OrderService
	basePath     string
}

func NewOrdersController(app application.Application) application.Controller {
	return &OrdersController{
		app:          app,
		orderService: app.Service(services.OrderService{}).(*services.OrderService),
		basePath:     "/t/{tenant}/orders",
	}
}

func (c *OrdersController) Key() string {
	return c.basePath
}

func (c *OrdersController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.TenantPage(c.app, configuration.Use())...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, err := composables.UseTenant(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page, err := tables.NewPage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	table, err := tables.Mount(page, tables.Spec[order.Order]{
		ID:      TableID,
		Columns: orders.Columns(ctx),
		Fetch: func(ctx context.Context, q apiclient.PageQuery) (datatable.Page[order.Order], error) {
			return c.orderService.GetPaginated(ctx, tenant, q)
		},
		PerPage: configuration.Use().PageSize,
		Params:  mux.Vars(r),
	})
	if err != nil {
		layouts.WriteBackendError(w, r, err)
		return
	}
	props := &orders.IndexProps{
		Tenant:     tenant,
		Table:      table.Component(),
		ReplaceURL: page.ReplaceURL(w),
	}
	templ.Handler(orders.Index(props)).ServeHTTP(w, r)
}
