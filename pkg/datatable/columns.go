package datatable

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/pkg/constants"
)

// ColumnContext is handed to the column factory on every render.
type ColumnContext struct {
	TableID      string
	Pathname     string
	SearchParams url.Values
	Params       map[string]string
	Sorting      *Sort
	// ActionPath is the base path the pager and sort buttons post to.
	ActionPath string
	// OnSort replaces the sort spec and synchronizes the table.
	OnSort func(ctx context.Context, s *Sort)
}

// Column describes one table column.
type Column[T any] struct {
	ID       string
	Header   func(ColumnContext) templ.Component
	Cell     func(T) templ.Component
	Sortable bool
	// Class is merged into the th and td classes.
	Class string
}

// ColumnsFunc builds the column set. It must not have side effects.
type ColumnsFunc[T any] func(ColumnContext) []Column[T]

// Text renders an escaped string.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

type dateFormatter interface {
	FormatDateTime(t time.Time) string
}

// DateTime renders t with the page's locale layout, or in ISO-like form when
// no page context is bound.
func DateTime(t time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := t.UTC().Format("2006-01-02 15:04")
		if f, ok := ctx.Value(constants.PageContext).(dateFormatter); ok {
			s = f.FormatDateTime(t)
		}
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// TextHeader is a non-sortable header.
func TextHeader(label string) func(ColumnContext) templ.Component {
	return func(ColumnContext) templ.Component {
		return Text(label)
	}
}

// SortHeader is a header button that toggles the sort on columnID.
func SortHeader(label, columnID string) func(ColumnContext) templ.Component {
	return func(cc ColumnContext) templ.Component {
		return cc.SortButton(label, columnID)
	}
}

// SortButton renders a header button posting to the table's sort action.
func (cc ColumnContext) SortButton(label, columnID string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		indicator := ""
		state := "none"
		if cc.Sorting != nil && cc.Sorting.ID == columnID {
			state = cc.Sorting.Direction()
			indicator = " ↑"
			if cc.Sorting.Desc {
				indicator = " ↓"
			}
		}
		vals, err := json.Marshal(map[string]string{"column": columnID})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w,
			`<button type="button" class="inline-flex items-center gap-1 font-medium hover:underline" data-role="sort" data-column="`+
				templ.EscapeString(columnID)+`" data-sort="`+state+`" hx-post="`+
				templ.EscapeString(cc.ActionPath+"/sort")+`" hx-vals='`+templ.EscapeString(string(vals))+`'>`+
				templ.EscapeString(label)+indicator+`</button>`)
		return err
	})
}
