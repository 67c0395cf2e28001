package intl

import (
	"golang.org/x/text/language"
)

// Locale is a UI language the box office ships translations for.
type Locale struct {
	Code  string
	Label string
	Tag   language.Tag
}

// DefaultLocale is used when nothing the visitor asks for is offered.
var DefaultLocale = Locale{Code: "en", Label: "English", Tag: language.English}

var locales = []Locale{
	DefaultLocale,
	{Code: "zh", Label: "中文", Tag: language.Chinese},
}

// Locales returns the locales whose code is in enabled, in shipping order.
// Unknown codes are ignored; an empty list enables every locale.
func Locales(enabled []string) []Locale {
	if len(enabled) == 0 {
		return locales
	}
	out := make([]Locale, 0, len(enabled))
	for _, l := range locales {
		for _, code := range enabled {
			if code == l.Code {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

// Negotiator picks the best enabled locale for a set of preferences.
type Negotiator struct {
	offered []Locale
	matcher language.Matcher
}

func NewNegotiator(enabled []string) *Negotiator {
	offered := Locales(enabled)
	if len(offered) == 0 {
		offered = []Locale{DefaultLocale}
	}
	tags := make([]language.Tag, len(offered))
	for i, l := range offered {
		tags[i] = l.Tag
	}
	return &Negotiator{offered: offered, matcher: language.NewMatcher(tags)}
}

// Offered lists the locales the negotiator can return.
func (n *Negotiator) Offered() []Locale {
	return n.offered
}

// Match returns the offered locale closest to wanted. With no preference the
// first offered locale wins.
func (n *Negotiator) Match(wanted ...language.Tag) Locale {
	if len(wanted) == 0 {
		return n.offered[0]
	}
	_, idx, _ := n.matcher.Match(wanted...)
	return n.offered[idx]
}

// Preferred resolves a stored cookie value first and an Accept-Language
// header second.
func (n *Negotiator) Preferred(cookie, acceptLanguage string) Locale {
	if cookie != "" {
		if tag, err := language.Parse(cookie); err == nil {
			return n.Match(tag)
		}
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return n.Match()
	}
	return n.Match(tags...)
}
