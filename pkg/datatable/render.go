package datatable

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// Labels holds the user-visible strings of the table chrome.
type Labels struct {
	Empty    string
	Previous string
	Next     string
}

func (l Labels) withDefaults() Labels {
	if l.Empty == "" {
		l.Empty = "No results."
	}
	if l.Previous == "" {
		l.Previous = "Previous"
	}
	if l.Next == "" {
		l.Next = "Next"
	}
	return l
}

const (
	rootClass   = "flex flex-col gap-4"
	tableClass  = "w-full caption-bottom text-sm"
	thClass     = "h-10 px-2 text-left align-middle font-medium text-gray-500"
	tdClass     = "p-2 align-middle"
	buttonClass = "inline-flex items-center justify-center rounded-md border px-3 py-1 text-sm disabled:pointer-events-none disabled:opacity-50"
)

// Handle is the row-type-free surface used by routes acting on a mounted table.
type Handle interface {
	ID() string
	Mount(ctx context.Context) SyncResult
	Bind(loc Location)
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	SortBy(ctx context.Context, columnID string) error
	CanNext() bool
	CanPrevious() bool
	Component() templ.Component
}

var _ Handle = (*Controller[struct{}])(nil)

// ElementID is the DOM id of the rendered table root.
func ElementID(tableID string) string {
	return "datatable-" + tableID
}

func (c *Controller[T]) columnContext() ColumnContext {
	cc := ColumnContext{
		TableID:    c.id,
		Params:     c.params,
		Sorting:    c.sort.clone(),
		ActionPath: c.actionPath,
		OnSort: func(ctx context.Context, s *Sort) {
			_ = c.SetSort(ctx, s)
		},
		SearchParams: url.Values{},
	}
	if ql, ok := c.location.(*QueryLocation); ok {
		u := ql.URL()
		cc.Pathname = u.Path
		cc.SearchParams = u.Query()
	}
	return cc
}

// Component renders the current state: header row, body rows or the empty
// placeholder, and the pager.
func (c *Controller[T]) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		c.mu.Lock()
		cc := c.columnContext()
		data := c.data
		labels := c.labels
		canPrev, canNext := c.canPrevious(), c.canNext()
		loading := c.loading
		className := c.className
		c.mu.Unlock()

		columns := c.columns(cc)

		if _, err := io.WriteString(w, fmt.Sprintf(
			`<div id="%s" class="%s" data-table="%s" data-loading="%t" hx-target="this" hx-swap="outerHTML">`,
			templ.EscapeString(ElementID(c.id)),
			templ.EscapeString(twmerge.Merge(rootClass, className)),
			templ.EscapeString(c.id),
			loading,
		)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div class="overflow-x-auto rounded-md border"><table class="`+tableClass+`"><thead><tr>`); err != nil {
			return err
		}
		for _, col := range columns {
			if _, err := io.WriteString(w, `<th class="`+templ.EscapeString(twmerge.Merge(thClass, col.Class))+`" data-column="`+templ.EscapeString(col.ID)+`">`); err != nil {
				return err
			}
			if col.Header != nil {
				if err := col.Header(cc).Render(ctx, w); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</th>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tr></thead><tbody>`); err != nil {
			return err
		}

		if len(data.Items) == 0 {
			colspan := len(columns)
			if colspan == 0 {
				colspan = 1
			}
			if _, err := io.WriteString(w, `<tr data-role="empty"><td colspan="`+strconv.Itoa(colspan)+`" class="h-24 text-center">`+templ.EscapeString(labels.Empty)+`</td></tr>`); err != nil {
				return err
			}
		}
		for _, item := range data.Items {
			if _, err := io.WriteString(w, `<tr class="border-t">`); err != nil {
				return err
			}
			for _, col := range columns {
				if _, err := io.WriteString(w, `<td class="`+templ.EscapeString(twmerge.Merge(tdClass, col.Class))+`">`); err != nil {
					return err
				}
				if col.Cell != nil {
					if err := col.Cell(item).Render(ctx, w); err != nil {
						return err
					}
				}
				if _, err := io.WriteString(w, `</td>`); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</tr>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tbody></table></div>`); err != nil {
			return err
		}

		pager := fmt.Sprintf(
			`<div class="flex items-center justify-end gap-2" data-role="pager"><span class="text-sm" data-role="page-status">%d / %d</span>%s%s</div></div>`,
			data.CurrentPage,
			data.LastPage,
			pagerButton("previous", labels.Previous, cc.ActionPath+"/previous", canPrev),
			pagerButton("next", labels.Next, cc.ActionPath+"/next", canNext),
		)
		_, err := io.WriteString(w, pager)
		return err
	})
}

func pagerButton(role, label, action string, enabled bool) string {
	disabled := ""
	if !enabled {
		disabled = " disabled"
	}
	return `<button type="button" class="` + buttonClass + `" data-role="` + role + `" hx-post="` +
		templ.EscapeString(action) + `" hx-disabled-elt="this"` + disabled + `>` + templ.EscapeString(label) + `</button>`
}
