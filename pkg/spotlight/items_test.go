package spotlight

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/session"
)

func withLocalizer(t *testing.T, ctx context.Context) context.Context {
	t.Helper()
	bundle := i18n.NewBundle(language.English)
	bundle.MustAddMessages(language.English,
		&i18n.Message{ID: "NavigationLinks.Events", Other: "Events"},
		&i18n.Message{ID: "NavigationLinks.Orders", Other: "Orders"},
		&i18n.Message{ID: "NavigationLinks.Shop", Other: "Storefront"},
	)
	return intl.WithLocalizer(ctx, i18n.NewLocalizer(bundle, "en"))
}

func withSession(t *testing.T, ctx context.Context, authenticated bool) context.Context {
	t.Helper()
	st := session.NewStore(time.Hour, func() (*apiclient.Client, error) {
		return apiclient.New(apiclient.Options{BaseURL: "http://backend.test"})
	})
	s, err := st.Create()
	require.NoError(t, err)
	if authenticated {
		s.SetIdentity(&session.Identity{ID: 1})
		s.SetTenant("acme")
	}
	return composables.WithSession(ctx, s)
}

func links() *QuickLinks {
	ql := &QuickLinks{}
	ql.Add(
		NewQuickLink(nil, "NavigationLinks.Events", "/events").TenantScoped(),
		NewQuickLink(nil, "NavigationLinks.Orders", "/orders").TenantScoped(),
		NewQuickLink(nil, "NavigationLinks.Shop", "/shop").Public(),
	)
	return ql
}

func TestQuickLinks_FindRanksTranslatedLabels(t *testing.T) {
	ctx := withSession(t, withLocalizer(t, context.Background()), true)

	found := links().Find(ctx, "ord")
	require.Len(t, found, 1)

	var buf bytes.Buffer
	require.NoError(t, found[0].Render(ctx, &buf))
	require.Contains(t, buf.String(), `href="/t/acme/orders"`)
	require.Contains(t, buf.String(), "Orders")
}

func TestQuickLinks_AnonymousSeesPublicOnly(t *testing.T) {
	ctx := withSession(t, withLocalizer(t, context.Background()), false)

	require.Empty(t, links().Find(ctx, "events"))
	require.Len(t, links().Find(ctx, "store"), 1)
}

func TestQuickLinks_RouteTenantWins(t *testing.T) {
	ctx := withSession(t, withLocalizer(t, context.Background()), true)
	ctx = composables.WithTenant(ctx, "globex")

	found := links().Find(ctx, "events")
	require.Len(t, found, 1)
	var buf bytes.Buffer
	require.NoError(t, found[0].Render(ctx, &buf))
	require.Contains(t, buf.String(), `href="/t/globex/events"`)
}

func TestSpotlight_MergesSourcesInOrder(t *testing.T) {
	sl := New()
	sl.Register(
		DataSourceFunc(func(ctx context.Context, q string) []Item {
			return []Item{NewItem(nil, "first "+q, "/a")}
		}),
		DataSourceFunc(func(ctx context.Context, q string) []Item {
			panic("broken source")
		}),
		DataSourceFunc(func(ctx context.Context, q string) []Item {
			return []Item{NewItem(nil, "second "+q, "/b")}
		}),
	)

	items := sl.Find(context.Background(), "jazz")
	require.Len(t, items, 2)

	var buf bytes.Buffer
	require.NoError(t, items[0].Render(context.Background(), &buf))
	require.Contains(t, buf.String(), "first jazz")
	require.Contains(t, buf.String(), `href="/a"`)
}
