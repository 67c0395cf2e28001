package spotlight

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/a-h/templ"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/types"
)

// Item represents a renderable spotlight entry.
type Item interface {
	templ.Component
}

// NewItem creates a simple Item with a static label and link.
func NewItem(icon templ.Component, label, link string) Item {
	return &item{label: label, icon: icon, link: link}
}

type item struct {
	label string
	icon  templ.Component
	link  string
}

func (i *item) Render(ctx context.Context, w io.Writer) error {
	return LinkItem(i.label, i.link, i.icon).Render(ctx, w)
}

// LinkItem renders one result row of the palette.
func LinkItem(label, link string, icon templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<li role="option" data-role="spotlight-item"><a href="%s" class="flex items-center gap-2 px-3 py-2 rounded hover:bg-gray-100">`,
			templ.EscapeString(link)); err != nil {
			return err
		}
		if icon != nil {
			if err := icon.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<span>%s</span></a></li>`, templ.EscapeString(label))
		return err
	})
}

func NewQuickLink(icon templ.Component, trKey, link string) *QuickLink {
	return &QuickLink{trKey: trKey, icon: icon, link: link}
}

// LinkTo turns a sidebar entry into a quick link with the same scope.
func LinkTo(nav types.NavigationItem) *QuickLink {
	return &QuickLink{
		trKey:        nav.Name,
		icon:         nav.Icon,
		link:         nav.Href,
		tenantScoped: nav.TenantScoped,
		public:       nav.Public,
	}
}

type QuickLink struct {
	trKey        string
	icon         templ.Component
	link         string
	tenantScoped bool
	public       bool
}

func (i *QuickLink) Render(ctx context.Context, w io.Writer) error {
	return LinkItem(intl.T(ctx, i.trKey, i.trKey), i.href(ctx), i.icon).Render(ctx, w)
}

// TenantScoped prefixes the link with the tenant the session works in.
func (i *QuickLink) TenantScoped() *QuickLink {
	i.tenantScoped = true
	return i
}

// Public shows the link to anonymous visitors.
func (i *QuickLink) Public() *QuickLink {
	i.public = true
	return i
}

func (i *QuickLink) href(ctx context.Context) string {
	if !i.tenantScoped {
		return i.link
	}
	if slug, err := composables.UseTenant(ctx); err == nil {
		return "/t/" + slug + i.link
	}
	if s, err := composables.UseSession(ctx); err == nil && s.Tenant() != "" {
		return "/t/" + s.Tenant() + i.link
	}
	return "/tenants"
}

type QuickLinks struct {
	items []*QuickLink
}

func (ql *QuickLinks) Find(ctx context.Context, q string) []Item {
	links := ql.visibleLinks(ctx)
	if len(links) == 0 {
		return nil
	}
	words := make([]string, len(links))
	for i, it := range links {
		words[i] = intl.T(ctx, it.trKey, it.trKey)
	}
	ranks := fuzzy.RankFindNormalizedFold(q, words)
	sort.Sort(ranks)

	result := make([]Item, 0, len(ranks))
	for _, rank := range ranks {
		result = append(result, links[rank.OriginalIndex])
	}
	return result
}

func (ql *QuickLinks) Add(links ...*QuickLink) {
	ql.items = append(ql.items, links...)
}

func (ql *QuickLinks) visibleLinks(ctx context.Context) []*QuickLink {
	authenticated := false
	if s, err := composables.UseSession(ctx); err == nil {
		authenticated = s.Authenticated()
	}
	filtered := make([]*QuickLink, 0, len(ql.items))
	for _, link := range ql.items {
		if authenticated || link.public {
			filtered = append(filtered, link)
		}
	}
	return filtered
}
