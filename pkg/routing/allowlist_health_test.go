package routing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowlist_LoadsAndHasCriticalRules(t *testing.T) {
	serverRules, err := LoadAllowlist("", "server")
	require.NoError(t, err)

	requireAllowlistRule(t, serverRules, "/shop/api", RouteClassPublicAPI)
	requireAllowlistRule(t, serverRules, "/login", RouteClassAuthn)
	requireAllowlistRule(t, serverRules, "/tables", RouteClassUI)
	requireAllowlistRule(t, serverRules, "/health", RouteClassOps)
	requireAllowlistRule(t, serverRules, "/debug/prometheus", RouteClassOps)
	requireAllowlistRule(t, serverRules, "/assets", RouteClassStatic)
}

func TestClassifier_ClassifyPath(t *testing.T) {
	rules, err := LoadAllowlist("", "server")
	require.NoError(t, err)
	c := NewClassifier(rules)

	require.Equal(t, RouteClassPublicAPI, c.ClassifyPath("/shop/api/acme/events"))
	require.Equal(t, RouteClassUI, c.ClassifyPath("/shop/acme"))
	require.Equal(t, RouteClassUI, c.ClassifyPath("/t/acme/events"))
	require.Equal(t, RouteClassOps, c.ClassifyPath("/debug/prometheus"))
	require.Equal(t, RouteClassUI, c.ClassifyPath("/loginx"))
	require.Equal(t, RouteClassInternalAPI, c.ClassifyPath("/api/tenants"))
	require.True(t, c.ClassifyPath("/shop/api/acme").IsJSON())
	require.False(t, c.ClassifyPath("/tables/events/next").IsJSON())
}

func TestLoadAllowlist_Rejects(t *testing.T) {
	dir := t.TempDir()
	write := func(body string) string {
		p := filepath.Join(dir, "allowlist.yaml")
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	_, err := LoadAllowlist(filepath.Join(dir, "missing.yaml"), "server")
	require.ErrorIs(t, err, ErrAllowlistNotFound)

	_, err = LoadAllowlist(write("version: 2\nentrypoints: {}\n"), "server")
	require.ErrorContains(t, err, "unsupported allowlist version")

	_, err = LoadAllowlist(write("version: 1\nentrypoints:\n  server:\n    - prefix: shop\n      class: ui\n"), "server")
	require.ErrorContains(t, err, "must start with '/'")

	_, err = LoadAllowlist(write("version: 1\nentrypoints:\n  server:\n    - prefix: /x\n      class: webhook\n"), "server")
	require.ErrorContains(t, err, "unknown class")

	_, err = LoadAllowlist(write("version: 1\nentrypoints:\n  server: []\n"), "superadmin")
	require.ErrorContains(t, err, "not found in allowlist")

	_, err = ParseAllowlist([]byte("version: 1\nentrypoints:\n  server:\n    - {prefix: /shop, class: ui}\n    - {prefix: /shop, class: public_api}\n"), "")
	require.ErrorContains(t, err, "already declared by rule[0]")
}

func TestParseAllowlist_DefaultEntrypoint(t *testing.T) {
	rules, err := ParseAllowlist([]byte("version: 1\nentrypoints:\n  server:\n    - {prefix: ' /health ', class: ops}\n"), "")
	require.NoError(t, err)
	require.Equal(t, []AllowlistRule{{Prefix: "/health", Class: RouteClassOps}}, rules)
}

func TestClassifier_APITreeFallback(t *testing.T) {
	c := NewClassifier(nil)
	require.Equal(t, RouteClassInternalAPI, c.ClassifyPath("/api"))
	require.Equal(t, RouteClassInternalAPI, c.ClassifyPath("/orders/api/export"))
	require.Equal(t, RouteClassUI, c.ClassifyPath("/orders/apis"))
	require.Equal(t, RouteClassUI, c.ClassifyPath("/t/acme/api"))
	require.Equal(t, RouteClassUI, c.ClassifyPath("/"))
}

func requireAllowlistRule(t *testing.T, rules []AllowlistRule, prefix string, class RouteClass) {
	t.Helper()

	for _, rule := range rules {
		if rule.Prefix == prefix && rule.Class == class {
			return
		}
	}
	t.Fatalf("allowlist missing rule: %q -> %q", prefix, class)
}
