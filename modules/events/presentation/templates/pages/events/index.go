package events

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/pkg/intl"
)

type IndexProps struct {
	Table      templ.Component
	ReplaceURL string
}

func Index(props *IndexProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := intl.T(ctx, "NavigationLinks.Events", "Events")
		layout := layouts.Authenticated(layouts.AuthenticatedProps{
			BaseProps: layouts.BaseProps{Title: title, ReplaceURL: props.ReplaceURL},
		})
		body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, `<h1 class="mb-4 text-xl font-semibold">`+templ.EscapeString(title)+`</h1>`); err != nil {
				return err
			}
			return props.Table.Render(ctx, w)
		})
		return layouts.Render(ctx, w, layout, body)
	})
}
