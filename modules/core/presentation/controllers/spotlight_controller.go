package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/modules/core/presentation/controllers/dtos"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/middleware"
)

type SpotlightController struct {
	app application.Application
}

func NewSpotlightController(app application.Application) application.Controller {
	return &SpotlightController{app: app}
}

func (c *SpotlightController) Key() string {
	return "/spotlight"
}

func (c *SpotlightController) Register(r *mux.Router) {
	router := r.PathPrefix("/spotlight").Subrouter()
	router.Use(middleware.PublicPage(c.app, configuration.Use())...)
	router.HandleFunc("/search", c.Search).Methods(http.MethodGet)
}

func (c *SpotlightController) Search(w http.ResponseWriter, r *http.Request) {
	dto, err := composables.UseQuery(&dtos.SpotlightDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	q := strings.TrimSpace(dto.Q)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if q == "" {
		return
	}
	items := c.app.Spotlight().Find(r.Context(), q)
	if len(items) == 0 {
		_, _ = io.WriteString(w, `<li class="px-3 py-2 text-sm text-gray-500" data-role="empty">`+
			templ.EscapeString(intl.T(r.Context(), "Spotlight.NothingFound", "Nothing found"))+`</li>`)
		return
	}
	for _, item := range items {
		if err := item.Render(r.Context(), w); err != nil {
			composables.TryUseLogger(r.Context()).WithError(err).Error("failed to render spotlight item")
			return
		}
	}
}
