package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/httpapi"
)

type HealthController struct {
	app application.Application
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{app: app}
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Get).Methods(http.MethodGet)
}

func (c *HealthController) Get(w http.ResponseWriter, _ *http.Request) {
	sessions := 0
	if store := c.app.Sessions(); store != nil {
		sessions = store.Len()
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "boxoffice",
		"sessions":  sessions,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
