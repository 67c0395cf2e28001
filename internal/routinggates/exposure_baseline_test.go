package routinggates

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/modules"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/itf"
	"github.com/iota-uz/boxoffice/pkg/middleware"
	"github.com/iota-uz/boxoffice/pkg/routing"
)

func mainServer(t *testing.T) *itf.Suite {
	t.Helper()
	return itf.NewSuite(t, itf.NewBackend(t), modules.BuiltInModules...)
}

func TestExposure_NoDevRoutesInProduction(t *testing.T) {
	for _, p := range collectRoutePaths(t, mainServer(t).Router()) {
		require.False(t, routing.HasPathPrefixOnBoundary(p, "/_dev"), p)
	}
}

// Back-office workspaces under /t/{tenant}, the tenant picker, the dashboard
// and the locale switch are ui through the classifier fallback.
func uiFallback(p string) bool {
	return p == "/" || p == "/tenants" || strings.HasPrefix(p, "/t/") || strings.HasPrefix(p, "/locale/")
}

func TestExposure_EveryRouteIsClassified(t *testing.T) {
	rules, err := routing.LoadAllowlist("", "server")
	require.NoError(t, err)
	classifier := routing.NewClassifier(rules)

	var unclassified []string
	for _, p := range collectRoutePaths(t, mainServer(t).Router()) {
		if _, ok := classifier.MatchAllowlist(p); ok || uiFallback(p) {
			continue
		}
		unclassified = append(unclassified, p)
	}
	require.Empty(t, unclassified, "add these prefixes to config/routing/allowlist.yaml")
}

func TestExposure_UnknownPageIsHTML(t *testing.T) {
	resp := mainServer(t).GET("/box-office/nowhere").Expect().Status(http.StatusNotFound)
	require.NotEqual(t, "application/json", resp.Header("Content-Type"))
}

func TestExposure_OpsRoutesNeedToken(t *testing.T) {
	suite := mainServer(t)
	suite.GET("/health").Expect().Status(http.StatusNotFound)
	suite.GET("/health").Header(middleware.OpsTokenHeader, "guess").Expect().Status(http.StatusNotFound)
	suite.GET("/health").Header(middleware.OpsTokenHeader, opsToken).Expect().Status(http.StatusOK)
	suite.GET("/health").Header("Authorization", "Bearer "+opsToken).Expect().Status(http.StatusOK)
}

func TestExposure_OpsRoutesOpenToTrustedNetwork(t *testing.T) {
	conf := &configuration.Configuration{
		GoAppEnvironment: configuration.Production,
		RealIPHeader:     "X-Real-IP",
		OpsGuard:         configuration.OpsGuardOptions{Enabled: true, CIDRs: "10.0.0.0/8"},
	}
	classifier := routing.NewClassifier([]routing.AllowlistRule{{Prefix: "/health", Class: routing.RouteClassOps}})

	r := mux.NewRouter()
	r.Use(middleware.OpsGuard(conf, classifier))
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	for ip, want := range map[string]int{
		"10.1.2.3":              http.StatusOK,
		"10.9.9.9, 203.0.113.1": http.StatusOK,
		"192.168.1.5":           http.StatusNotFound,
	} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Real-IP", ip)
		r.ServeHTTP(rr, req)
		require.Equal(t, want, rr.Code, ip)
	}
}

func collectRoutePaths(t *testing.T, router *mux.Router) []string {
	t.Helper()

	var paths []string
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		p := routePath(route)
		if strings.TrimSpace(p) != "" {
			paths = append(paths, p)
		}
		return nil
	})
	require.NoError(t, err)

	sort.Strings(paths)
	return paths
}

func routePath(route *mux.Route) string {
	if route == nil {
		return ""
	}
	if tmpl, err := route.GetPathTemplate(); err == nil {
		return tmpl
	}
	regexp, err := route.GetPathRegexp()
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(regexp, "^")
}
