package composables

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/constants"
	"github.com/iota-uz/boxoffice/pkg/session"
	"github.com/iota-uz/boxoffice/pkg/shared"
	"github.com/iota-uz/boxoffice/pkg/types"
)

var (
	ErrNoLogger  = errors.New("logger not found")
	ErrNoSession = errors.New("session not found")
	ErrNoTenant  = errors.New("tenant not found")
	ErrNoClient  = errors.New("backend client not found")
)

// Params is the caller information resolved once per request.
type Params struct {
	IP        string
	UserAgent string
}

// UseParams returns the request parameters from the context.
// If the parameters are not found, the second return value will be false.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

// WithParams returns a new context with the request parameters.
func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseLogger returns the request logger from the context.
// If the logger is not found, the function will panic.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		panic(ErrNoLogger)
	}
	return logger.(*logrus.Entry)
}

// TryUseLogger falls back to the standard logger outside a request.
func TryUseLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok && logger != nil {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, s)
}

// UseSession returns the browser session bound by the session middleware.
func UseSession(ctx context.Context) (*session.Session, error) {
	s, ok := ctx.Value(constants.SessionKey).(*session.Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

// WithClient binds a backend client that is not tied to a browser session,
// such as the anonymous client of the storefront or the export CLI.
func WithClient(ctx context.Context, c *apiclient.Client) context.Context {
	return context.WithValue(ctx, constants.ClientKey, c)
}

// UseClient returns the explicitly bound client, then the session's.
func UseClient(ctx context.Context) (*apiclient.Client, error) {
	if c, ok := ctx.Value(constants.ClientKey).(*apiclient.Client); ok && c != nil {
		return c, nil
	}
	s, err := UseSession(ctx)
	if err != nil {
		return nil, ErrNoClient
	}
	return s.Client, nil
}

// UseActor names the signed-in user of the request, or "" when anonymous.
func UseActor(ctx context.Context) string {
	s, err := UseSession(ctx)
	if err != nil {
		return ""
	}
	id, err := s.Identity()
	if err != nil {
		return ""
	}
	if id.Email != "" {
		return id.Email
	}
	return id.Name
}

func WithTenant(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, constants.TenantKey, slug)
}

// UseTenant returns the tenant slug of the current route.
func UseTenant(ctx context.Context) (string, error) {
	slug, ok := ctx.Value(constants.TenantKey).(string)
	if !ok || slug == "" {
		return "", ErrNoTenant
	}
	return slug, nil
}

// UseIP returns the IP address from the context.
// If the IP address is not found, the second return value will be false.
func UseIP(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.IP, true
}

// UseUserAgent returns the user agent from the context.
// If the user agent is not found, the second return value will be false.
func UseUserAgent(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.UserAgent, true
}

// TryUsePageCtx attempts to fetch the page context without panicking.
func TryUsePageCtx(ctx context.Context) (types.PageContextProvider, bool) {
	pageCtx := ctx.Value(constants.PageContext)
	if pageCtx == nil {
		return nil, false
	}
	v, ok := pageCtx.(types.PageContextProvider)
	if !ok {
		return nil, false
	}
	return v, true
}

// WithPageCtx returns a new context with the page context.
// Accepts any type implementing PageContextProvider interface for extensibility.
func WithPageCtx(ctx context.Context, pageCtx types.PageContextProvider) context.Context {
	return context.WithValue(ctx, constants.PageContext, pageCtx)
}

func UseFlash(w http.ResponseWriter, r *http.Request, name string) ([]byte, error) {
	c, err := r.Cookie(name)
	if err != nil {
		switch err {
		case http.ErrNoCookie:
			queryValue := r.URL.Query().Get(name)
			if queryValue != "" {
				return []byte(queryValue), nil
			}
			return nil, nil
		default:
			return nil, err
		}
	}
	val, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil, err
	}
	dc := &http.Cookie{Name: name, MaxAge: -1, Expires: time.Unix(1, 0)}
	http.SetCookie(w, dc)
	return val, nil
}

// UseFlashMap decodes a JSON flash cookie such as the login form errors.
func UseFlashMap[K comparable, V any](w http.ResponseWriter, r *http.Request, name string) (map[K]V, error) {
	raw, err := UseFlash(w, r, name)
	if err != nil || len(raw) == 0 {
		return nil, err
	}
	var m map[K]V
	return m, json.Unmarshal(raw, &m)
}

func UseQuery[T comparable](v T, r *http.Request) (T, error) {
	return v, shared.Decoder.Decode(v, r.URL.Query())
}

func UseForm[T comparable](v T, r *http.Request) (T, error) {
	if err := r.ParseForm(); err != nil {
		return v, err
	}
	return v, shared.Decoder.Decode(v, r.Form)
}

