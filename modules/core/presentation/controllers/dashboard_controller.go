package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/pages/dashboard"
	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/pages/tenants"
	"github.com/iota-uz/boxoffice/modules/core/services"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/middleware"
)

type DashboardController struct {
	app         application.Application
	authService *services.AuthService
}

func NewDashboardController(app application.Application) application.Controller {
	return &DashboardController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

func (c *DashboardController) Key() string {
	return "/"
}

func (c *DashboardController) Register(r *mux.Router) {
	router := r.NewRoute().Subrouter()
	router.Use(middleware.AuthenticatedPage(c.app, configuration.Use())...)
	router.HandleFunc("/", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/tenants", c.Tenants).Methods(http.MethodGet)
}

// Get shows the current tenant, or sends the user to pick one.
func (c *DashboardController) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := composables.UseSession(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	identity, err := sess.Identity()
	if err != nil {
		middleware.RedirectToLogin(w, r)
		return
	}
	slug := sess.Tenant()
	for _, t := range identity.Tenants {
		if t.Slug != slug {
			continue
		}
		if err := dashboard.Index(&dashboard.IndexProps{User: identity, Tenant: t}).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	http.Redirect(w, r, "/tenants", http.StatusFound)
}

// Tenants reloads the user from the backend so newly granted tenants show up.
func (c *DashboardController) Tenants(w http.ResponseWriter, r *http.Request) {
	sess, err := composables.UseSession(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	identity, err := c.authService.Refresh(r.Context(), sess)
	if err != nil {
		layouts.WriteBackendError(w, r, err)
		return
	}
	props := &tenants.IndexProps{Tenants: identity.Tenants, Current: sess.Tenant()}
	if err := tenants.Index(props).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
