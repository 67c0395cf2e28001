package error_pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/intl"
)

func message(code, titleID, titleDef, bodyID, bodyDef string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="flex flex-col items-center gap-3 py-24 text-center" data-error="`+code+`">`); err != nil {
			return err
		}
		if err := icons.Warning(icons.Props{Size: "48"}).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w,
			`<h1 class="text-2xl font-semibold">`+templ.EscapeString(intl.T(ctx, titleID, titleDef))+`</h1>`+
				`<p class="text-gray-500">`+templ.EscapeString(intl.T(ctx, bodyID, bodyDef))+`</p>`+
				`<a class="text-sm underline" href="/">`+templ.EscapeString(intl.T(ctx, "ErrorPages.Home", "Back to dashboard"))+`</a></section>`)
		return err
	})
}

func NotFoundContent() templ.Component {
	return message("404", "ErrorPages.NotFound.Title", "Page not found", "ErrorPages.NotFound.Body", "The page you are looking for does not exist.")
}

func ForbiddenContent() templ.Component {
	return message("403", "ErrorPages.Forbidden.Title", "Access denied", "ErrorPages.Forbidden.Body", "You are not allowed to view this page.")
}

func UnavailableContent() templ.Component {
	return message("502", "ErrorPages.Unavailable.Title", "Service unavailable", "ErrorPages.Unavailable.Body", "The backend did not answer. Try again shortly.")
}

// Page wraps content with the layout matching the visitor.
func Page(content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		props := layouts.BaseProps{Title: "Box Office"}
		if s, err := composables.UseSession(ctx); err == nil && s.Authenticated() {
			return layouts.Render(ctx, w, layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: props}), content)
		}
		return layouts.Render(ctx, w, layouts.Public(props), content)
	})
}
