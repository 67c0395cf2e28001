package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/modules/core/services"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/htmx"
	"github.com/iota-uz/boxoffice/pkg/middleware"
)

type LogoutController struct {
	app         application.Application
	authService *services.AuthService
}

func NewLogoutController(app application.Application) application.Controller {
	return &LogoutController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

func (c *LogoutController) Key() string {
	return "/logout"
}

func (c *LogoutController) Register(r *mux.Router) {
	router := r.PathPrefix("/logout").Subrouter()
	router.Use(middleware.WithSession(c.app.Sessions(), configuration.Use()))
	router.HandleFunc("", c.Logout).Methods(http.MethodPost)
}

func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, err := composables.UseSession(r.Context()); err == nil && sess.Authenticated() {
		// The local session is reset either way; the error is logged by the service.
		_ = c.authService.Logout(r.Context(), sess)
	}
	if htmx.IsHxRequest(r) {
		htmx.Redirect(w, "/login")
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
