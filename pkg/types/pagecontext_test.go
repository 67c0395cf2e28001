package types

import (
	"net/url"
	"testing"
	"time"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/iota-uz/boxoffice/pkg/intl"
)

func TestPageContext_T(t *testing.T) {
	bundle := i18n.NewBundle(language.English)
	require.NoError(t, bundle.AddMessages(language.English,
		&i18n.Message{ID: "Shop.SoldOut", Other: "Sold out"},
		&i18n.Message{ID: "Shop.Columns.Name", Other: "Event"},
	))
	p := &PageContext{Locale: language.English, Localizer: i18n.NewLocalizer(bundle, "en")}

	require.Equal(t, "Sold out", p.T("Shop.SoldOut"))
	require.Equal(t, "Shop.Missing", p.T("Shop.Missing"))
	require.Equal(t, "Event", p.Namespace("Shop").Namespace("Columns").T("Name"))
	require.Equal(t, "Shop.SoldOut", (&PageContext{}).T("Shop.SoldOut"))
}

func TestPageContext_IsActive(t *testing.T) {
	p := &PageContext{URL: &url.URL{Path: "/t/acme/events/5"}}
	require.True(t, p.IsActive("/t/acme/events"))
	require.True(t, p.IsActive("/t/acme/events/"))
	require.False(t, p.IsActive("/t/acme/event"))
	require.False(t, p.IsActive("/"))
	require.False(t, (&PageContext{}).IsActive("/t/acme"))
}

func TestPageContext_FormatDateTime(t *testing.T) {
	at := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)
	require.Equal(t, "Fri, 01 May 2026 19:00", (&PageContext{Locale: language.English}).FormatDateTime(at))
	require.Equal(t, "2026年05月01日 19:00", (&PageContext{Locale: language.SimplifiedChinese}).FormatDateTime(at))

	tokyo := time.FixedZone("JST", 9*60*60)
	require.Equal(t, "Sat, 02 May 2026 04:00", (&PageContext{Locale: language.English, Location: tokyo}).FormatDateTime(at))
}

func TestPageContext_Locales(t *testing.T) {
	require.Equal(t, []intl.Locale{intl.DefaultLocale}, (&PageContext{}).Locales())
	p := &PageContext{Offered: intl.Locales(nil)}
	require.Len(t, p.Locales(), 2)
}
