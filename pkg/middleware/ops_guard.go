package middleware

import (
	"crypto/subtle"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/metrics"
	"github.com/iota-uz/boxoffice/pkg/routing"
)

const OpsTokenHeader = "X-Ops-Token"

type opsGuard struct {
	classifier *routing.Classifier
	networks   []netip.Prefix
	token      []byte
	ipHeader   string
}

// OpsGuard answers 404 for health and metrics routes in production unless
// the caller is on a trusted network or presents the ops token. Outside
// production, or with the guard disabled, it is a no-op.
func OpsGuard(conf *configuration.Configuration, classifier *routing.Classifier) mux.MiddlewareFunc {
	if conf.GoAppEnvironment != configuration.Production || !conf.OpsGuard.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	g := &opsGuard{
		classifier: classifier,
		networks:   trustedNetworks(conf.OpsGuard.CIDRs),
		token:      []byte(strings.TrimSpace(conf.OpsGuard.Token)),
		ipHeader:   conf.RealIPHeader,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g.classifier.ClassifyPath(r.URL.Path) != routing.RouteClassOps {
				next.ServeHTTP(w, r)
				return
			}
			if g.trusted(r) || g.tokenMatches(r) {
				next.ServeHTTP(w, r)
				return
			}
			metrics.OpsDenied.Inc()
			composables.TryUseLogger(r.Context()).
				WithField("path", r.URL.Path).
				Warn("ops guard: request hidden")
			http.NotFound(w, r)
		})
	}
}

func (g *opsGuard) trusted(r *http.Request) bool {
	ip, ok := clientIP(r, g.ipHeader)
	if !ok {
		return false
	}
	for _, n := range g.networks {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func (g *opsGuard) tokenMatches(r *http.Request) bool {
	if len(g.token) == 0 {
		return false
	}
	got := strings.TrimSpace(r.Header.Get(OpsTokenHeader))
	if got == "" {
		got = bearer(r)
	}
	return subtle.ConstantTimeCompare([]byte(got), g.token) == 1
}

func bearer(r *http.Request) string {
	scheme, value, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(value)
}

// trustedNetworks accepts prefixes and bare addresses separated by commas,
// semicolons or whitespace. Invalid entries are skipped.
func trustedNetworks(raw string) []netip.Prefix {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t'
	})
	out := make([]netip.Prefix, 0, len(fields))
	for _, f := range fields {
		if p, err := netip.ParsePrefix(f); err == nil {
			out = append(out, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(f); err == nil {
			out = append(out, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return out
}
