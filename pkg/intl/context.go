package intl

import (
	"context"
	"errors"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type ctxKey string

const (
	localizerKey ctxKey = "localizer"
	localeKey    ctxKey = "locale"
)

var ErrNoLocalizer = errors.New("localizer not found")

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey, l)
}

func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(localizerKey).(*i18n.Localizer)
	return l, ok && l != nil
}

func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeKey, tag)
}

func UseLocale(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(localeKey).(language.Tag)
	return tag, ok
}

// MustT localizes id and panics when no localizer is bound.
func MustT(ctx context.Context, id string, data ...map[string]any) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		panic(ErrNoLocalizer)
	}
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	return l.MustLocalize(cfg)
}

// T localizes id and falls back to def when the message or the localizer
// is missing.
func T(ctx context.Context, id, def string) string {
	return TData(ctx, id, def, nil)
}

// TData is T with template data.
func TData(ctx context.Context, id, def string, data map[string]any) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		return def
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:      id,
		DefaultMessage: &i18n.Message{ID: id, Other: def},
		TemplateData:   data,
	})
	if err != nil {
		return def
	}
	return msg
}
