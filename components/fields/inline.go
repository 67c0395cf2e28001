// Package fields renders click-to-edit fields driven by inlineedit.Field.
package fields

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/iota-uz/boxoffice/pkg/inlineedit"
	"github.com/iota-uz/boxoffice/pkg/intl"
)

// Form operations posted back by the rendered controls.
const (
	OpBegin   = "begin"
	OpChange  = "change"
	OpSubmit  = "submit"
	OpConfirm = "confirm"
	OpCancel  = "cancel"
)

type Option struct {
	Value string
	Label string
}

type Props struct {
	ID       string
	Label    string
	Snapshot inlineedit.Snapshot
	// Action receives the form posts of every state.
	Action string
	// Display formats the committed value; the raw value is shown when nil.
	Display   func(value string) string
	InputType string
	InputMode string
	Options   []Option
	Class     string
}

const (
	rootClass  = "flex flex-col gap-1"
	inputClass = "rounded-md border px-2 py-1 text-sm"
	btnClass   = "rounded-md border px-2 py-1 text-xs"
)

func hxVals(op string) string {
	b, _ := json.Marshal(map[string]string{"op": op})
	return string(b)
}

func button(action, label, op string) string {
	return `<button type="button" class="` + btnClass + `" data-op="` + op + `" hx-post="` + action + `" hx-vals='` +
		templ.EscapeString(hxVals(op)) + `'>` + templ.EscapeString(label) + `</button>`
}

// Inline renders the field in its current state.
func Inline(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := p.Snapshot
		action := templ.EscapeString(p.Action)
		var b strings.Builder
		b.WriteString(`<div id="` + templ.EscapeString(p.ID) + `" class="` + templ.EscapeString(twmerge.Merge(rootClass, p.Class)) +
			`" data-inline-edit="` + templ.EscapeString(s.Name) + `" data-state="` + string(s.State) +
			`" hx-target="this" hx-swap="outerHTML">`)
		b.WriteString(`<span class="text-xs text-gray-500">` + templ.EscapeString(p.Label) + `</span>`)

		switch s.State {
		case inlineedit.StateView:
			value := s.Value
			if p.Display != nil {
				value = p.Display(s.Value)
			}
			b.WriteString(`<div class="flex items-center gap-2"><span data-role="value">` + templ.EscapeString(value) + `</span>`)
			b.WriteString(button(action, intl.T(ctx, "InlineEdit.Edit", "Edit"), OpBegin))
			b.WriteString(`</div>`)
		case inlineedit.StateConfirm:
			b.WriteString(`<p class="text-sm" data-role="confirm">` + templ.EscapeString(intl.T(ctx, "InlineEdit.ConfirmPrompt", "This change cannot be undone easily. Continue?")) + `</p>`)
			b.WriteString(`<div class="flex gap-2"><span data-role="draft">` + templ.EscapeString(s.Draft) + `</span>`)
			b.WriteString(button(action, intl.T(ctx, "InlineEdit.Confirm", "Confirm"), OpConfirm))
			b.WriteString(button(action, intl.T(ctx, "InlineEdit.Cancel", "Cancel"), OpCancel))
			b.WriteString(`</div>`)
		default:
			b.WriteString(`<form class="flex items-center gap-2" hx-post="` + action + `" hx-vals='` + templ.EscapeString(hxVals(OpSubmit)) + `'>`)
			b.WriteString(input(p, s.Draft))
			b.WriteString(`<button type="submit" class="` + btnClass + `" data-op="submit">` + templ.EscapeString(intl.T(ctx, "InlineEdit.Save", "Save")) + `</button>`)
			b.WriteString(button(action, intl.T(ctx, "InlineEdit.Cancel", "Cancel"), OpCancel))
			b.WriteString(`</form>`)
			if s.State == inlineedit.StateError && s.Message != "" {
				b.WriteString(`<p class="text-xs text-red-600" role="alert" data-role="error">` + templ.EscapeString(s.Message) + `</p>`)
			}
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func input(p Props, draft string) string {
	if len(p.Options) > 0 {
		var b strings.Builder
		b.WriteString(`<select name="value" class="` + inputClass + `">`)
		for _, o := range p.Options {
			selected := ""
			if o.Value == draft {
				selected = " selected"
			}
			b.WriteString(`<option value="` + templ.EscapeString(o.Value) + `"` + selected + `>` + templ.EscapeString(o.Label) + `</option>`)
		}
		b.WriteString(`</select>`)
		return b.String()
	}
	typ := p.InputType
	if typ == "" {
		typ = "text"
	}
	mode := ""
	if p.InputMode != "" {
		mode = ` inputmode="` + templ.EscapeString(p.InputMode) + `"`
	}
	return `<input name="value" type="` + templ.EscapeString(typ) + `" class="` + inputClass + `" value="` +
		templ.EscapeString(draft) + `"` + mode + ` autofocus>`
}
