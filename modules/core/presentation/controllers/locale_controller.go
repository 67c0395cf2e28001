package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/middleware"
)

// LocaleController stores the language chosen in the top bar.
type LocaleController struct {
	app application.Application
}

func NewLocaleController(app application.Application) application.Controller {
	return &LocaleController{app: app}
}

func (c *LocaleController) Key() string {
	return "/locale"
}

func (c *LocaleController) Register(r *mux.Router) {
	r.HandleFunc("/locale/{lang}", c.Set).Methods(http.MethodGet)
}

func (c *LocaleController) Set(w http.ResponseWriter, r *http.Request) {
	lang := mux.Vars(r)["lang"]
	if !offered(c.app.GetSupportedLanguages(), lang) {
		http.NotFound(w, r)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.LocaleCookie,
		Value:    lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   configuration.Use().GoAppEnvironment == configuration.Production,
		SameSite: http.SameSiteLaxMode,
	})
	next := SafeNext(r.URL.Query().Get("next"))
	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

func offered(enabled []string, code string) bool {
	for _, l := range intl.Locales(enabled) {
		if l.Code == code {
			return true
		}
	}
	return false
}
