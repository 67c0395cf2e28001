package layouts

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/boxoffice/internal/assets"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/constants"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/types"
)

type AuthenticatedProps struct {
	BaseProps
}

func UseNavItems(ctx context.Context) []types.NavigationItem {
	items, _ := ctx.Value(constants.NavItemsKey).([]types.NavigationItem)
	return items
}

func currentPath(ctx context.Context) string {
	if pageCtx, ok := composables.TryUsePageCtx(ctx); ok && pageCtx.GetURL() != nil {
		return pageCtx.GetURL().Path
	}
	return ""
}

func isActive(ctx context.Context, href string) bool {
	pageCtx, ok := composables.TryUsePageCtx(ctx)
	return ok && pageCtx.IsActive(href)
}

func locales(ctx context.Context) []intl.Locale {
	if pageCtx, ok := composables.TryUsePageCtx(ctx); ok {
		return pageCtx.Locales()
	}
	return []intl.Locale{intl.DefaultLocale}
}

func navLink(ctx context.Context, w io.Writer, item types.NavigationItem, active bool) error {
	class := "flex items-center gap-2 rounded-md px-3 py-2 text-sm hover:bg-gray-100"
	if active {
		class += " bg-gray-100 font-medium"
	}
	if err := writeAll(w, `<a class="`, class, `" href="`, templ.EscapeString(item.Href), `">`); err != nil {
		return err
	}
	if item.Icon != nil {
		if err := item.Icon.Render(ctx, w); err != nil {
			return err
		}
	}
	return writeAll(w, `<span>`, templ.EscapeString(item.Name), `</span></a>`)
}

func sidebar(ctx context.Context, w io.Writer) error {
	if err := writeAll(w, `<aside class="w-60 shrink-0 border-r bg-white p-4"><div class="mb-6 flex items-center gap-2">`); err != nil {
		return err
	}
	if err := assets.DefaultLogo().Render(ctx, w); err != nil {
		return err
	}
	if err := writeAll(w, `<span class="font-semibold">Box Office</span></div><nav class="flex flex-col gap-1" data-role="nav">`); err != nil {
		return err
	}
	for _, item := range UseNavItems(ctx) {
		if len(item.Children) == 0 {
			if err := navLink(ctx, w, item, isActive(ctx, item.Href)); err != nil {
				return err
			}
			continue
		}
		if err := writeAll(w, `<details open><summary class="px-3 py-2 text-sm text-gray-500">`, templ.EscapeString(item.Name), `</summary>`); err != nil {
			return err
		}
		for _, child := range item.Children {
			if err := navLink(ctx, w, child, isActive(ctx, child.Href)); err != nil {
				return err
			}
		}
		if err := writeAll(w, `</details>`); err != nil {
			return err
		}
	}
	return writeAll(w, `</nav></aside>`)
}

func topbar(ctx context.Context, w io.Writer) error {
	if err := writeAll(w,
		`<header class="flex items-center gap-4 border-b bg-white px-6 py-3">`,
		`<div class="relative flex-1">`,
		`<input id="spotlight-input" type="search" name="q" class="w-full rounded-md border px-3 py-1 text-sm" placeholder="`,
		templ.EscapeString(intl.T(ctx, "Spotlight.Placeholder", "Search…")),
		`" hx-get="/spotlight/search" hx-trigger="input changed delay:300ms, search" hx-target="#spotlight-results" autocomplete="off">`,
		`<ul id="spotlight-results" class="absolute z-10 mt-1 w-full rounded-md bg-white shadow"></ul></div>`,
	); err != nil {
		return err
	}
	next := url.QueryEscape(currentPath(ctx))
	for _, l := range locales(ctx) {
		if err := writeAll(w, `<a class="text-xs uppercase text-gray-500 hover:underline" href="/locale/`, l.Code, `?next=`, next, `" title="`, templ.EscapeString(l.Label), `">`, l.Code, `</a>`); err != nil {
			return err
		}
	}
	if s, err := composables.UseSession(ctx); err == nil {
		if identity, err := s.Identity(); err == nil {
			if err := writeAll(w, `<a class="flex items-center gap-1 text-sm" href="/tenants" data-role="user">`); err != nil {
				return err
			}
			if err := icons.UserCircle(icons.Props{Size: "16"}).Render(ctx, w); err != nil {
				return err
			}
			if err := writeAll(w, templ.EscapeString(identity.Name), `</a>`); err != nil {
				return err
			}
		}
	}
	return writeAll(w, `<form method="post" action="/logout"><button type="submit" class="text-sm" data-role="logout">`, templ.EscapeString(intl.T(ctx, "NavigationLinks.Logout", "Log out")), `</button></form></header>`)
}

// Authenticated wraps Base with the navigation sidebar and the top bar.
func Authenticated(props AuthenticatedProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content := templ.GetChildren(ctx)
		shell := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if err := writeAll(w, `<div class="flex min-h-screen">`); err != nil {
				return err
			}
			if err := sidebar(ctx, w); err != nil {
				return err
			}
			if err := writeAll(w, `<div class="flex flex-1 flex-col">`); err != nil {
				return err
			}
			if err := topbar(ctx, w); err != nil {
				return err
			}
			if err := writeAll(w, `<main id="content" class="flex-1 p-6">`); err != nil {
				return err
			}
			if err := content.Render(ctx, w); err != nil {
				return err
			}
			return writeAll(w, `</main></div></div>`)
		})
		return Base(&props.BaseProps).Render(templ.WithChildren(ctx, shell), w)
	})
}

// Public is the storefront and login shell without navigation.
func Public(props BaseProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content := templ.GetChildren(ctx)
		shell := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if err := writeAll(w, `<main class="mx-auto w-full max-w-5xl p-6">`); err != nil {
				return err
			}
			if err := content.Render(ctx, w); err != nil {
				return err
			}
			return writeAll(w, `</main>`)
		})
		return Base(&props).Render(templ.WithChildren(ctx, shell), w)
	})
}

// Render wraps content with layout for a full document.
func Render(ctx context.Context, w io.Writer, layout, content templ.Component) error {
	return layout.Render(templ.WithChildren(ctx, content), w)
}
