package constants

import "github.com/go-playground/validator/v10"

type ContextKey string

const (
	LoggerKey    ContextKey = "logger"
	RequestIDKey ContextKey = "request_id"
	RequestStart ContextKey = "request_start"
	ParamsKey    ContextKey = "params"
	PageContext  ContextKey = "page_context"
	AppKey       ContextKey = "app"
	SessionKey   ContextKey = "session"
	NavItemsKey  ContextKey = "nav_items"
	TenantKey    ContextKey = "tenant"
	ClientKey    ContextKey = "backend_client"
)

const (
	// CookieXSRF is the cookie the backend stores its XSRF token in.
	CookieXSRF = "XSRF-TOKEN"
	// HeaderXSRF carries the decoded XSRF token on mutating requests.
	HeaderXSRF = "X-XSRF-TOKEN"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())
