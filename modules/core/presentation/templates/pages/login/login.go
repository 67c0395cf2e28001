package login

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/internal/assets"
	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/pkg/intl"
)

type LoginProps struct {
	Email        string
	Next         string
	ErrorsMap    map[string]string
	ErrorMessage string
}

func fieldError(props *LoginProps, field string) string {
	if msg := props.ErrorsMap[field]; msg != "" {
		return `<p class="text-xs text-red-600" data-error-for="` + field + `">` + templ.EscapeString(msg) + `</p>`
	}
	return ""
}

func form(props *LoginProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="mx-auto mt-24 flex max-w-sm flex-col gap-6 rounded-lg border bg-white p-8"><div class="flex items-center gap-2">`); err != nil {
			return err
		}
		if err := assets.DefaultLogo().Render(ctx, w); err != nil {
			return err
		}
		action := "/login"
		if props.Next != "" {
			action += "?next=" + templ.EscapeString(props.Next)
		}
		alert := ""
		if props.ErrorMessage != "" {
			alert = `<div role="alert" class="rounded-md bg-red-50 p-2 text-sm text-red-700" data-role="login-error">` + templ.EscapeString(props.ErrorMessage) + `</div>`
		}
		_, err := io.WriteString(w,
			`<h1 class="text-xl font-semibold">`+templ.EscapeString(intl.T(ctx, "Login.Title", "Sign in"))+`</h1></div>`+alert+
				`<form method="post" action="`+action+`" class="flex flex-col gap-4">`+
				`<label class="flex flex-col gap-1 text-sm">`+templ.EscapeString(intl.T(ctx, "Login.Email", "Email"))+
				`<input type="email" name="Email" class="rounded-md border px-3 py-2" value="`+templ.EscapeString(props.Email)+`" autocomplete="username"></label>`+
				fieldError(props, "Email")+
				`<label class="flex flex-col gap-1 text-sm">`+templ.EscapeString(intl.T(ctx, "Login.Password", "Password"))+
				`<input type="password" name="Password" class="rounded-md border px-3 py-2" autocomplete="current-password"></label>`+
				fieldError(props, "Password")+
				`<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="Remember" value="true">`+
				templ.EscapeString(intl.T(ctx, "Login.Remember", "Remember me"))+`</label>`+
				`<button type="submit" class="rounded-md bg-indigo-600 px-3 py-2 text-white">`+templ.EscapeString(intl.T(ctx, "Login.Submit", "Sign in"))+`</button>`+
				`</form></div>`)
		return err
	})
}

func Index(props *LoginProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layouts.Render(ctx, w, layouts.Public(layouts.BaseProps{Title: intl.T(ctx, "Login.Title", "Sign in")}), form(props))
	})
}
