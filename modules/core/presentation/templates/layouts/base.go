package layouts

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/internal/assets"
	"github.com/iota-uz/boxoffice/pkg/composables"
)

const (
	htmxScript     = "https://unpkg.com/htmx.org@2.0.4"
	tailwindScript = "https://cdn.tailwindcss.com"
)

type BaseProps struct {
	Title string
	// ReplaceURL is applied with history.replaceState once the page loads.
	ReplaceURL string
}

func writeAll(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}

func lang(ctx context.Context) string {
	if pageCtx, ok := composables.TryUsePageCtx(ctx); ok {
		return pageCtx.GetLocale().String()
	}
	return "en"
}

// pendingToasts drains the session queue into the JSON read by app.js.
func pendingToasts(ctx context.Context) string {
	s, err := composables.UseSession(ctx)
	if err != nil {
		return ""
	}
	msgs := s.Toasts.Drain()
	if len(msgs) == 0 {
		return ""
	}
	b, err := json.Marshal(msgs)
	if err != nil {
		return ""
	}
	return string(b)
}

// Base is the HTML document shell. Children are rendered inside body.
func Base(props *BaseProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := props.Title
		if title == "" {
			title = "Box Office"
		}
		replace := ""
		if props.ReplaceURL != "" {
			replace = ` data-replace-url="` + templ.EscapeString(props.ReplaceURL) + `"`
		}
		if err := writeAll(w,
			`<!DOCTYPE html><html lang="`, templ.EscapeString(lang(ctx)), `"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`, templ.EscapeString(title), `</title>`,
			`<link rel="stylesheet" href="`, templ.EscapeString(assets.Path("css/main.css")), `">`,
			`<script src="`, tailwindScript, `"></script>`,
			`<script src="`, htmxScript, `" defer></script>`,
			`<script src="`, templ.EscapeString(assets.Path("js/app.js")), `" defer></script>`,
			`</head><body class="min-h-screen bg-gray-50 text-gray-900"`, replace, `>`,
		); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		initial := ""
		if pending := pendingToasts(ctx); pending != "" {
			initial = ` data-initial="` + templ.EscapeString(pending) + `"`
		}
		return writeAll(w, `<div id="toasts" aria-live="polite"`, initial, `></div></body></html>`)
	})
}
