package session

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/inlineedit"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *time.Time) {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := NewStore(ttl, func() (*apiclient.Client, error) {
		return apiclient.New(apiclient.Options{BaseURL: "http://backend.test"})
	})
	st.now = func() time.Time { return now }
	return st, &now
}

func TestStore_CreateAndGet(t *testing.T) {
	st, _ := newTestStore(t, time.Hour)

	s, err := st.Create()
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)
	require.NotNil(t, s.Client)
	require.NotNil(t, s.Tables)

	got, ok := st.Get(s.ID)
	require.True(t, ok)
	require.Same(t, s, got)

	_, ok = st.Get("missing")
	require.False(t, ok)
}

func TestStore_ExpiresIdleSessions(t *testing.T) {
	st, now := newTestStore(t, time.Minute)
	s, err := st.Create()
	require.NoError(t, err)

	*now = now.Add(2 * time.Minute)
	_, ok := st.Get(s.ID)
	require.False(t, ok)
	require.Zero(t, st.Len())
}

func TestStore_Sweep(t *testing.T) {
	st, now := newTestStore(t, time.Minute)
	stale, err := st.Create()
	require.NoError(t, err)
	*now = now.Add(50 * time.Second)
	fresh, err := st.Create()
	require.NoError(t, err)

	*now = now.Add(30 * time.Second)
	require.Equal(t, 1, st.Sweep())
	_, ok := st.Get(stale.ID)
	require.False(t, ok)
	_, ok = st.Get(fresh.ID)
	require.True(t, ok)
}

func TestSession_Identity(t *testing.T) {
	st, _ := newTestStore(t, 0)
	s, err := st.Create()
	require.NoError(t, err)

	_, err = s.Identity()
	require.ErrorIs(t, err, ErrNotAuthenticated)

	s.SetIdentity(&Identity{ID: 1, Tenants: []TenantRef{{Slug: "acme"}}})
	id, err := s.Identity()
	require.NoError(t, err)
	require.True(t, id.HasTenant("acme"))
	require.False(t, id.HasTenant("globex"))
}

func TestSession_FieldIsStable(t *testing.T) {
	st, _ := newTestStore(t, 0)
	s, err := st.Create()
	require.NoError(t, err)

	calls := 0
	build := func() *inlineedit.Field {
		calls++
		return inlineedit.New(inlineedit.Options{Name: "name"})
	}
	a := s.Field("events/1/name", build)
	b := s.Field("events/1/name", build)
	require.Same(t, a, b)
	require.Equal(t, 1, calls)

	s.ResetField("events/1/name")
	require.NotSame(t, a, s.Field("events/1/name", build))
}

func TestSession_ResetFields(t *testing.T) {
	st, _ := newTestStore(t, 0)
	s, err := st.Create()
	require.NoError(t, err)

	build := func() *inlineedit.Field { return inlineedit.New(inlineedit.Options{Name: "price"}) }
	a := s.Field("tickets/acme/1/price", build)
	b := s.Field("tickets/globex/2/price", build)

	s.ResetFields("tickets/acme/")
	require.NotSame(t, a, s.Field("tickets/acme/1/price", build))
	require.Same(t, b, s.Field("tickets/globex/2/price", build))
}

func TestSession_Reset(t *testing.T) {
	st, _ := newTestStore(t, 0)
	s, err := st.Create()
	require.NoError(t, err)

	s.SetIdentity(&Identity{ID: 7})
	s.SetTenant("acme")
	s.Toasts.Success(context.Background(), "saved")
	s.Field("events/1/name", func() *inlineedit.Field {
		return inlineedit.New(inlineedit.Options{Name: "name"})
	})

	events, err := datatable.New(datatable.Options[string]{
		TableID:  "events",
		Location: datatable.NewQueryLocation(&url.URL{Path: "/t/acme/events"}),
		Refetch: func(context.Context, datatable.RefetchArgs) (datatable.Page[string], error) {
			return datatable.Page[string]{}, nil
		},
	})
	require.NoError(t, err)
	s.Tables.Put(events)

	s.Reset()
	require.False(t, s.Authenticated())
	require.Empty(t, s.Tenant())
	require.Zero(t, s.Toasts.Len())
	_, mounted := s.Tables.Get("events")
	require.False(t, mounted)
	require.NotNil(t, s.Client)
}
