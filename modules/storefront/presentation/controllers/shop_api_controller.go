package controllers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/modules/storefront/presentation/controllers/dtos"
	"github.com/iota-uz/boxoffice/modules/storefront/services"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/httpapi"
	"github.com/iota-uz/boxoffice/pkg/middleware"
)

// ShopAPIController serves published events as JSON to third-party sites.
type ShopAPIController struct {
	app         application.Application
	shopService *services.ShopService
	basePath    string
}

func NewShopAPIController(app application.Application) application.Controller {
	return &ShopAPIController{
		app:         app,
		shopService: app.Service(services.ShopService{}).(*services.ShopService),
		basePath:    "/shop/api/{tenant}/events",
	}
}

func (c *ShopAPIController) Key() string {
	return c.basePath
}

func (c *ShopAPIController) Register(r *mux.Router) {
	conf := configuration.Use()
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.PublicCors(conf.Storefront.Origins()...))
	if conf.RateLimit.Enabled && conf.RateLimit.PublicRPS > 0 {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerPeriod: conf.RateLimit.PublicRPS,
			Period:            time.Second,
			Store:             middleware.ConfiguredStore(conf.RateLimit, conf.Logger()),
			Prefix:            "storefront",
		}))
	}
	router.Use(middleware.PublicTenant())
	router.HandleFunc("", c.List).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/{slug}", c.Get).Methods(http.MethodGet, http.MethodOptions)
}

func (c *ShopAPIController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := composables.TryUseLogger(ctx)
	tenant, err := composables.UseTenant(ctx)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusNotFound, httpapi.CodeNotFound, "not found", nil)
		return
	}
	dto, err := composables.UseQuery(&dtos.ListQueryDTO{}, r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeBadRequest, "malformed query", nil)
		return
	}
	if meta, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, httpapi.CodeValidation, "invalid query", meta)
		return
	}
	page, err := c.shopService.GetPaginated(ctx, tenant, dto.Query(configuration.Use().Storefront.PageSize))
	if err != nil {
		logger.WithError(err).WithField("tenant", tenant).Warn("public listing failed")
		_ = httpapi.WriteBackendError(w, err, nil)
		return
	}
	if err := httpapi.WriteJSON(w, http.StatusOK, dtos.ToPageDTO(page)); err != nil {
		logger.WithError(err).Warn("failed to encode public listing")
	}
}

func (c *ShopAPIController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := composables.TryUseLogger(ctx)
	tenant, err := composables.UseTenant(ctx)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusNotFound, httpapi.CodeNotFound, "not found", nil)
		return
	}
	l, err := c.shopService.GetBySlug(ctx, tenant, mux.Vars(r)["slug"])
	if err != nil {
		_ = httpapi.WriteBackendError(w, err, nil)
		return
	}
	payload := map[string]dtos.ListingDTO{"data": dtos.ToListingDTO(l)}
	if err := httpapi.WriteJSON(w, http.StatusOK, payload); err != nil {
		logger.WithError(err).Warn("failed to encode public event")
	}
}
