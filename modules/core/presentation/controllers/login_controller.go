package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/iota-uz/boxoffice/modules/core/infrastructure/backend"
	"github.com/iota-uz/boxoffice/modules/core/presentation/controllers/dtos"
	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/pages/login"
	"github.com/iota-uz/boxoffice/modules/core/services"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/middleware"
	"github.com/iota-uz/boxoffice/pkg/shared"
)

// SafeNext keeps only same-site relative redirect targets.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return ""
	}
	return next
}

func NewLoginController(app application.Application) application.Controller {
	return &LoginController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

type LoginController struct {
	app         application.Application
	authService *services.AuthService
}

func (c *LoginController) Key() string {
	return "/login"
}

func (c *LoginController) Register(r *mux.Router) {
	conf := configuration.Use()
	getRouter := r.PathPrefix("/login").Subrouter()
	getRouter.Use(middleware.PublicPage(c.app, conf)...)
	getRouter.HandleFunc("", c.Get).Methods(http.MethodGet)

	setRouter := r.PathPrefix("/login").Subrouter()
	setRouter.Use(middleware.PublicPage(c.app, conf)...)
	setRouter.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerPeriod: 10, // login attempts per minute per IP
		Period:            time.Minute,
		Store:             middleware.NewMemoryStore(),
		Prefix:            "login",
	}))
	setRouter.HandleFunc("", c.Post).Methods(http.MethodPost)
}

func (c *LoginController) redirectBack(w http.ResponseWriter, r *http.Request, email string) {
	q := url.Values{}
	q.Set("email", email)
	if next := SafeNext(r.URL.Query().Get("next")); next != "" {
		q.Set("next", next)
	}
	http.Redirect(w, r, fmt.Sprintf("/login?%s", q.Encode()), http.StatusFound)
}

func (c *LoginController) Get(w http.ResponseWriter, r *http.Request) {
	if s, err := composables.UseSession(r.Context()); err == nil && s.Authenticated() {
		next := SafeNext(r.URL.Query().Get("next"))
		if next == "" {
			next = "/"
		}
		http.Redirect(w, r, next, http.StatusFound)
		return
	}
	errorsMap, err := composables.UseFlashMap[string, string](w, r, "errorsMap")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	errorMessage, err := composables.UseFlash(w, r, "error")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := login.Index(&login.LoginProps{
		ErrorsMap:    errorsMap,
		Email:        r.URL.Query().Get("email"),
		Next:         SafeNext(r.URL.Query().Get("next")),
		ErrorMessage: string(errorMessage),
	}).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (c *LoginController) Post(w http.ResponseWriter, r *http.Request) {
	logger := composables.TryUseLogger(r.Context())
	sess, err := composables.UseSession(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dto, err := composables.UseForm(&dtos.LoginDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		shared.SetFlashMap(w, "errorsMap", errorsMap)
		c.redirectBack(w, r, dto.Email)
		return
	}

	if _, err := c.authService.Authenticate(r.Context(), sess, dto.Email, dto.Password, dto.Remember); err != nil {
		logger.WithError(err).Warn("failed to authenticate user")
		if errors.Is(err, backend.ErrInvalidCredentials) {
			shared.SetFlash(w, "error", []byte(intl.MustT(r.Context(), "Login.Errors.PasswordInvalid")))
		} else {
			shared.SetFlash(w, "error", []byte(intl.MustT(r.Context(), "Errors.Internal")))
		}
		c.redirectBack(w, r, dto.Email)
		return
	}

	redirectURL := SafeNext(r.URL.Query().Get("next"))
	if redirectURL == "" {
		redirectURL = "/"
	}
	http.Redirect(w, r, redirectURL, http.StatusFound)
}
