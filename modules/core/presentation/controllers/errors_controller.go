package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/pages/error_pages"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/constants"
	"github.com/iota-uz/boxoffice/pkg/httpapi"
	"github.com/iota-uz/boxoffice/pkg/middleware"
	"github.com/iota-uz/boxoffice/pkg/routing"
)

// ErrorHandlersOptions picks the route classes used to tell storefront JSON
// from pages. Classifier wins over loading the allowlist again.
type ErrorHandlersOptions struct {
	Classifier    *routing.Classifier
	Entrypoint    string
	AllowlistPath string
}

func (o ErrorHandlersOptions) classifier() *routing.Classifier {
	if o.Classifier != nil {
		return o.Classifier
	}
	rules, err := routing.LoadAllowlist(o.AllowlistPath, o.Entrypoint)
	if err != nil {
		rules = nil
	}
	return routing.NewClassifier(rules)
}

func firstOptions(opts []ErrorHandlersOptions) ErrorHandlersOptions {
	if len(opts) == 0 {
		return ErrorHandlersOptions{}
	}
	return opts[0]
}

func renderNotFoundPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := error_pages.Page(error_pages.NotFoundContent()).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// NotFound answers unknown storefront API paths with a JSON envelope and
// everything else with the localized 404 page.
func NotFound(app application.Application, opts ...ErrorHandlersOptions) http.HandlerFunc {
	cl := firstOptions(opts).classifier()
	var page http.Handler = http.HandlerFunc(renderNotFoundPage)
	stack := middleware.PublicPage(app, configuration.Use())
	for i := len(stack) - 1; i >= 0; i-- {
		page = stack[i](page)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !cl.ClassifyPath(r.URL.Path).IsJSON() {
			page.ServeHTTP(w, r)
			return
		}
		meta := errorMeta(w, r)
		_ = httpapi.WriteError(w, http.StatusNotFound, httpapi.CodeNotFound, "not found", meta)
	}
}

func MethodNotAllowed(opts ...ErrorHandlersOptions) http.HandlerFunc {
	cl := firstOptions(opts).classifier()

	return func(w http.ResponseWriter, r *http.Request) {
		if !cl.ClassifyPath(r.URL.Path).IsJSON() {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		meta := errorMeta(w, r)
		meta["method"] = r.Method
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, httpapi.CodeMethodNotAllowed, "method not allowed", meta)
	}
}

func errorMeta(w http.ResponseWriter, r *http.Request) map[string]string {
	meta := map[string]string{"path": r.URL.Path}
	if id := requestID(r.Context(), w, r); id != "" {
		meta["request_id"] = id
	}
	return meta
}

func requestID(ctx context.Context, w http.ResponseWriter, r *http.Request) string {
	if id, ok := ctx.Value(constants.RequestIDKey).(string); ok && id != "" {
		return id
	}
	if id := strings.TrimSpace(w.Header().Get("X-Request-Id")); id != "" {
		return id
	}
	return strings.TrimSpace(r.Header.Get("X-Request-Id"))
}
