package htmx

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

const (
	HeaderRequest    = "HX-Request"
	HeaderCurrentURL = "HX-Current-URL"
	HeaderReplaceURL = "HX-Replace-Url"
	HeaderTrigger    = "HX-Trigger"
	HeaderRedirect   = "HX-Redirect"
	HeaderReswap     = "HX-Reswap"
)

func IsHxRequest(r *http.Request) bool {
	return len(r.Header.Get(HeaderRequest)) > 0
}

// CurrentURL is the browser URL htmx reports, or the request URL otherwise.
func CurrentURL(r *http.Request) *url.URL {
	if raw := strings.TrimSpace(r.Header.Get(HeaderCurrentURL)); raw != "" {
		if u, err := url.Parse(raw); err == nil {
			return u
		}
	}
	cp := *r.URL
	return &cp
}

// ReplaceURL rewrites the browser history entry without navigating.
func ReplaceURL(w http.ResponseWriter, uri string) {
	w.Header().Set(HeaderReplaceURL, uri)
}

// Trigger sets an HX-Trigger event with a JSON payload.
func Trigger(w http.ResponseWriter, event string, payload any) error {
	events := map[string]any{}
	if existing := w.Header().Get(HeaderTrigger); existing != "" {
		_ = json.Unmarshal([]byte(existing), &events)
	}
	events[event] = payload
	b, err := json.Marshal(events)
	if err != nil {
		return err
	}
	w.Header().Set(HeaderTrigger, string(b))
	return nil
}

func Redirect(w http.ResponseWriter, path string) {
	w.Header().Set(HeaderRedirect, path)
}

// Reswap overrides the swap strategy of the triggering element.
func Reswap(w http.ResponseWriter, strategy string) {
	w.Header().Set(HeaderReswap, strategy)
}

const HeaderRefresh = "HX-Refresh"

// Refresh asks htmx for a full page reload.
func Refresh(w http.ResponseWriter) {
	w.Header().Set(HeaderRefresh, "true")
}
