package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/boxoffice/modules/storefront/domain/aggregates/listing"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

type stubRepo struct {
	client *apiclient.Client
	query  apiclient.PageQuery
}

func (r *stubRepo) GetPaginated(ctx context.Context, _ string, q apiclient.PageQuery) (datatable.Page[listing.Listing], error) {
	r.client, _ = composables.UseClient(ctx)
	r.query = q
	return datatable.Page[listing.Listing]{CurrentPage: 1, LastPage: 1}, nil
}

func (r *stubRepo) GetBySlug(ctx context.Context, _, slug string) (listing.Listing, error) {
	r.client, _ = composables.UseClient(ctx)
	return listing.Hydrate(slug, "Gala", "", time.Time{}, decimal.Zero, "USD", 1, nil), nil
}

func TestShopService_UsesAnonymousClient(t *testing.T) {
	client, err := apiclient.New(apiclient.Options{BaseURL: "http://backend.test"})
	require.NoError(t, err)
	repo := &stubRepo{}
	svc := NewShopService(repo, client)

	_, err = svc.GetPaginated(context.Background(), "acme", apiclient.PageQuery{Page: 1, Sort: "capacity"})
	require.NoError(t, err)
	require.Same(t, client, repo.client)
	require.Empty(t, repo.query.Sort)

	l, err := svc.GetBySlug(context.Background(), "acme", "gala")
	require.NoError(t, err)
	require.Equal(t, "gala", l.Slug())
	require.Same(t, client, repo.client)
}
