package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultPath = "/debug/prometheus"

// Controller exposes a registry in the Prometheus text format.
type Controller struct {
	path     string
	gatherer prometheus.Gatherer
}

// NewController serves reg on path. A nil reg serves Gatherer.
func NewController(path string, reg prometheus.Gatherer) *Controller {
	if path == "" {
		path = DefaultPath
	}
	if reg == nil {
		reg = Gatherer
	}
	return &Controller{path: path, gatherer: reg}
}

func (c *Controller) Key() string {
	return c.path
}

func (c *Controller) Register(r *mux.Router) {
	h := promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{
		ErrorHandling:     promhttp.ContinueOnError,
		EnableOpenMetrics: true,
	})
	r.Handle(c.path, h).Methods(http.MethodGet)
}
