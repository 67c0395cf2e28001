package layouts

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pkg/errors"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/htmx"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/middleware"
)

// WriteBackendError answers a UI request whose backend call failed.
// Expired sessions go to the login page; other failures render a short
// notice, into the body for htmx requests.
func WriteBackendError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := composables.TryUseLogger(ctx)
	if apiclient.IsAuthError(err) {
		if s, sErr := composables.UseSession(ctx); sErr == nil {
			s.Reset()
		}
		middleware.RedirectToLogin(w, r)
		return
	}

	status, titleID, titleDef := http.StatusBadGateway, "ErrorPages.Unavailable.Title", "Service unavailable"
	switch {
	case errors.Is(err, apiclient.ErrNotFound):
		status, titleID, titleDef = http.StatusNotFound, "ErrorPages.NotFound.Title", "Page not found"
	case errors.Is(err, apiclient.ErrForbidden):
		status, titleID, titleDef = http.StatusForbidden, "ErrorPages.Forbidden.Title", "Access denied"
	}
	logger.WithError(err).WithField("status", status).Warn("backend call failed")

	notice := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="py-24 text-center" role="alert" data-error="backend"><h1 class="text-2xl font-semibold">`+
			templ.EscapeString(intl.T(ctx, titleID, titleDef))+`</h1></section>`)
		return err
	})
	if htmx.IsHxRequest(r) {
		w.Header().Set("HX-Retarget", "#content")
		htmx.Reswap(w, "innerHTML")
		templ.Handler(notice, templ.WithStatus(status)).ServeHTTP(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	props := BaseProps{Title: titleDef}
	var layout templ.Component = Public(props)
	if s, sErr := composables.UseSession(ctx); sErr == nil && s.Authenticated() {
		layout = Authenticated(AuthenticatedProps{BaseProps: props})
	}
	if rErr := Render(ctx, w, layout, notice); rErr != nil {
		logger.WithError(rErr).Error("failed to render error page")
	}
}
