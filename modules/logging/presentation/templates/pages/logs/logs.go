package logs

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/modules/logging/domain/entities/activity"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/intl"
)

const timeLayout = "2006-01-02 15:04:05"

func KindLabel(ctx context.Context, k activity.Kind) string {
	return intl.T(ctx, "Activity.Kinds."+string(k), string(k))
}

// Columns are the activity table columns.
func Columns(ctx context.Context) datatable.ColumnsFunc[activity.Entry] {
	when := intl.T(ctx, "Activity.Columns.CreatedAt", "Time")
	kind := intl.T(ctx, "Activity.Columns.Kind", "Kind")
	actor := intl.T(ctx, "Activity.Columns.Actor", "User")
	subject := intl.T(ctx, "Activity.Columns.Subject", "Subject")
	summary := intl.T(ctx, "Activity.Columns.Summary", "Change")
	kinds := make(map[activity.Kind]string, len(activity.Kinds))
	for _, k := range activity.Kinds {
		kinds[k] = KindLabel(ctx, k)
	}
	return func(datatable.ColumnContext) []datatable.Column[activity.Entry] {
		return []datatable.Column[activity.Entry]{
			{
				ID:       "created_at",
				Header:   datatable.SortHeader(when, "created_at"),
				Cell:     func(e activity.Entry) templ.Component { return datatable.Text(e.CreatedAt.Format(timeLayout)) },
				Sortable: true,
				Class:    "whitespace-nowrap",
			},
			{
				ID:     "kind",
				Header: datatable.TextHeader(kind),
				Cell: func(e activity.Entry) templ.Component {
					if label, ok := kinds[e.Kind]; ok {
						return datatable.Text(label)
					}
					return datatable.Text(string(e.Kind))
				},
			},
			{
				ID:     "actor",
				Header: datatable.TextHeader(actor),
				Cell:   func(e activity.Entry) templ.Component { return datatable.Text(e.Actor) },
			},
			{
				ID:     "subject",
				Header: datatable.TextHeader(subject),
				Cell:   func(e activity.Entry) templ.Component { return datatable.Text(e.Subject) },
			},
			{
				ID:     "summary",
				Header: datatable.TextHeader(summary),
				Cell:   func(e activity.Entry) templ.Component { return datatable.Text(e.Summary) },
			},
		}
	}
}

type IndexProps struct {
	Table      templ.Component
	ReplaceURL string
}

func Index(props *IndexProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := intl.T(ctx, "NavigationLinks.Activity", "Activity")
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
