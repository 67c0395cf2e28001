package controllers

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/components/tables"
	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/modules/logging/domain/entities/activity"
	"github.com/iota-uz/boxoffice/modules/logging/presentation/templates/pages/logs"
	"github.com/iota-uz/boxoffice/modules/logging/services"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/middleware"
)

const TableID = "activity"

type ActivityController struct {
	app             application.Application
	activityService *services.ActivityService
	basePath        string
}

func NewActivityController(app application.Application) application.Controller {
	return &ActivityController{
		app:             app,
		activityService: app.Service(services.ActivityService{}).(*services.ActivityService),
		basePath:        "/t/{tenant}/activity",
	}
}

func (c *ActivityController) Key() string {
	return c.basePath
}

func (c *ActivityController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.TenantPage(c.app, configuration.Use())...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
}

func (c *ActivityController) List(w http.ResponseWriter, r *http.Request) {
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
	table, err := tables.Mount(page, tables.Spec[activity.Entry]{
		ID:      TableID,
		Columns: logs.Columns(ctx),
		Fetch: func(ctx context.Context, q apiclient.PageQuery) (datatable.Page[activity.Entry], error) {
			return c.activityService.GetPaginated(ctx, tenant, q)
		},
		PerPage: configuration.Use().PageSize,
		Params:  mux.Vars(r),
	})
	if err != nil {
		layouts.WriteBackendError(w, r, err)
		return
	}
	props := &logs.IndexProps{Table: table.Component(), ReplaceURL: page.ReplaceURL(w)}
	templ.Handler(logs.Index(props)).ServeHTTP(w, r)
}
