package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/routing"
	"github.com/iota-uz/boxoffice/pkg/session"
	"github.com/iota-uz/boxoffice/pkg/types"
)

func testConf() *configuration.Configuration {
	return &configuration.Configuration{
		SidCookieKey:    "sid",
		SessionDuration: time.Hour,
		RealIPHeader:    "X-Real-IP",
	}
}

func testStore() *session.Store {
	return session.NewStore(time.Hour, func() (*apiclient.Client, error) {
		return apiclient.New(apiclient.Options{BaseURL: "http://backend.test"})
	})
}

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestWithSession_IssuesAndReusesCookie(t *testing.T) {
	store := testStore()
	var seen []string
	h := WithSession(store, testConf())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := composables.UseSession(r.Context())
		require.NoError(t, err)
		seen = append(seen, s.ID)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "sid", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Result().Cookies())
	require.Equal(t, seen[0], seen[1])
	require.Equal(t, 1, store.Len())
}

func TestRequireAuth(t *testing.T) {
	store := testStore()
	h := WithSession(store, testConf())(RequireAuth()(http.HandlerFunc(ok)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/t/acme/events?page_events=2", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login?next=%2Ft%2Facme%2Fevents%3Fpage_events%3D2", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodPost, "/tables/events/next", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
}

func TestRequireTenant(t *testing.T) {
	store := testStore()
	s, err := store.Create()
	require.NoError(t, err)
	s.SetIdentity(&session.Identity{ID: 1, Tenants: []session.TenantRef{{Slug: "acme"}}})

	var tenant string
	r := mux.NewRouter()
	sub := r.PathPrefix("/t/{tenant}").Subrouter()
	sub.Use(WithSession(store, testConf()), RequireTenant())
	sub.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		tenant, _ = composables.UseTenant(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/t/acme/events", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: s.ID})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "acme", tenant)
	require.Equal(t, "acme", s.Tenant())

	req = httptest.NewRequest(http.MethodGet, "/t/globex/events", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: s.ID})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFilterNavItems(t *testing.T) {
	items := []types.NavigationItem{
		{Name: "Dashboard", Href: "/"},
		{Name: "Events", Href: "/events", TenantScoped: true},
		{Name: "Sales", Children: []types.NavigationItem{
			{Name: "Orders", Href: "/orders", TenantScoped: true},
		}},
		{Name: "Storefront", Href: "/shop", Public: true},
	}

	anon := getEnabledNavItems(filterItems(items, false, ""))
	require.Len(t, anon, 1)
	require.Equal(t, "/shop", anon[0].Href)

	noTenant := getEnabledNavItems(filterItems(items, true, ""))
	require.Len(t, noTenant, 2)

	full := getEnabledNavItems(filterItems(items, true, "acme"))
	require.Len(t, full, 4)
	require.Equal(t, "/t/acme/events", full[1].Href)
	// a group with a single child is flattened
	require.Equal(t, "Orders", full[2].Name)
	require.Equal(t, "/t/acme/orders", full[2].Href)
}

func TestOpsGuard(t *testing.T) {
	conf := testConf()
	conf.GoAppEnvironment = configuration.Production
	conf.OpsGuard = configuration.OpsGuardOptions{Enabled: true, Token: "s3cret", CIDRs: "10.0.0.0/8"}
	classifier := routing.NewClassifier([]routing.AllowlistRule{{Prefix: "/debug/prometheus", Class: routing.RouteClassOps}})
	h := OpsGuard(conf, classifier)(http.HandlerFunc(ok))

	do := func(path string, mutate func(*http.Request)) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.9:5555"
		if mutate != nil {
			mutate(req)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusNoContent, do("/t/acme/events", nil))
	require.Equal(t, http.StatusNotFound, do("/debug/prometheus", nil))
	require.Equal(t, http.StatusNoContent, do("/debug/prometheus", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer s3cret")
	}))
	require.Equal(t, http.StatusNoContent, do("/debug/prometheus", func(r *http.Request) {
		r.Header.Set("X-Real-IP", "10.1.2.3")
	}))
}

func TestOpsGuard_DisabledOutsideProduction(t *testing.T) {
	conf := testConf()
	conf.OpsGuard = configuration.OpsGuardOptions{Enabled: true}
	classifier := routing.NewClassifier([]routing.AllowlistRule{{Prefix: "/health", Class: routing.RouteClassOps}})
	rec := httptest.NewRecorder()
	OpsGuard(conf, classifier)(http.HandlerFunc(ok)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTrustedNetworks(t *testing.T) {
	nets := trustedNetworks("10.0.0.0/8; 192.168.1.7 ::1/128,bogus")
	require.Len(t, nets, 3)
	require.Equal(t, "192.168.1.7/32", nets[1].String())
}

func TestClientIP(t *testing.T) {
	cases := map[string]struct {
		header, remote, want string
	}{
		"remote addr":    {remote: "203.0.113.9:5555", want: "203.0.113.9"},
		"forwarded list": {header: "198.51.100.1, 10.0.0.1", remote: "10.0.0.1:80", want: "198.51.100.1"},
		"ipv6 with port": {remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		"mapped ipv4":    {remote: "[::ffff:10.1.2.3]:80", want: "10.1.2.3"},
		"garbage header": {header: "unknown", remote: "203.0.113.9:1", want: "203.0.113.9"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			if tc.header != "" {
				req.Header.Set("X-Real-IP", tc.header)
			}
			require.Equal(t, tc.want, ClientIP(req, "X-Real-IP"))
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{RequestsPerPeriod: 2, Period: time.Minute})(http.HandlerFunc(ok))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/shop/api/acme/events", nil)
		req.RemoteAddr = "198.51.100.7:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			require.Contains(t, rec.Body.String(), "RATE_LIMITED")
			require.Equal(t, "60", rec.Header().Get("Retry-After"))
		}
	}
	require.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestPublicCors_Preflight(t *testing.T) {
	h := PublicCors("https://tickets.example")(http.HandlerFunc(ok))

	req := httptest.NewRequest(http.MethodOptions, "/shop/api/acme/events", nil)
	req.Header.Set("Origin", "https://tickets.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "https://tickets.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/shop/api/acme/events", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
