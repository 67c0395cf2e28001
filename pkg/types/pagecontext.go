package types

import (
	"net/url"
	"strings"
	"time"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/iota-uz/boxoffice/pkg/intl"
)

// PageContextProvider is the per-request view of locale, URL and tenant
// that templates render against.
type PageContextProvider interface {
	// T translates key and returns it unchanged when no message exists.
	T(key string, args ...map[string]interface{}) string
	// Namespace prefixes every key passed to T with prefix and a dot.
	Namespace(prefix string) PageContextProvider
	GetLocale() language.Tag
	GetURL() *url.URL
	GetLocalizer() *i18n.Localizer
	Tenant() string
	// Locales lists the languages the visitor may switch to.
	Locales() []intl.Locale
	// IsActive reports whether href is the current page or one of its parents.
	IsActive(href string) bool
	FormatDateTime(t time.Time) string
}

type PageContext struct {
	Locale     language.Tag
	URL        *url.URL
	Localizer  *i18n.Localizer
	TenantSlug string
	Offered    []intl.Locale
	// Location is the zone dates are shown in. UTC when nil.
	Location *time.Location
	prefix   string
}

var _ PageContextProvider = (*PageContext)(nil)

var dateTimeLayouts = map[string]string{
	"en": "Mon, 02 Jan 2006 15:04",
	"zh": "2006年01月02日 15:04",
}

func (p *PageContext) T(key string, args ...map[string]interface{}) string {
	id := key
	if p.prefix != "" {
		id = p.prefix + "." + key
	}
	if p.Localizer == nil {
		return id
	}
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(args) > 0 {
		cfg.TemplateData = args[0]
	}
	msg, err := p.Localizer.Localize(cfg)
	if err != nil {
		return id
	}
	return msg
}

func (p *PageContext) Namespace(prefix string) PageContextProvider {
	c := *p
	if c.prefix != "" {
		prefix = c.prefix + "." + prefix
	}
	c.prefix = prefix
	return &c
}

func (p *PageContext) GetLocale() language.Tag {
	return p.Locale
}

func (p *PageContext) GetURL() *url.URL {
	return p.URL
}

func (p *PageContext) GetLocalizer() *i18n.Localizer {
	return p.Localizer
}

func (p *PageContext) Tenant() string {
	return p.TenantSlug
}

func (p *PageContext) Locales() []intl.Locale {
	if len(p.Offered) == 0 {
		return []intl.Locale{intl.DefaultLocale}
	}
	return p.Offered
}

func (p *PageContext) IsActive(href string) bool {
	if p.URL == nil || href == "" {
		return false
	}
	path := p.URL.Path
	if href == path {
		return true
	}
	return href != "/" && strings.HasPrefix(path, strings.TrimSuffix(href, "/")+"/")
}

// FormatDateTime renders t in the page's zone with a layout for its language.
func (p *PageContext) FormatDateTime(t time.Time) string {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	base, _ := p.Locale.Base()
	layout, ok := dateTimeLayouts[base.String()]
	if !ok {
		layout = dateTimeLayouts["en"]
	}
	return t.In(loc).Format(layout)
}
