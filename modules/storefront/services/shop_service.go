package services

import (
	"context"
	"slices"

	"github.com/pkg/errors"

	"github.com/iota-uz/boxoffice/modules/storefront/domain/aggregates/listing"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

// ShopService reads published events with an anonymous backend client,
// so storefront visitors never share a session's credentials.
type ShopService struct {
	repo   listing.Repository
	client *apiclient.Client
}

func NewShopService(repo listing.Repository, client *apiclient.Client) *ShopService {
	return &ShopService{repo: repo, client: client}
}

func (s *ShopService) bind(ctx context.Context) context.Context {
	if s.client == nil {
		return ctx
	}
	return composables.WithClient(ctx, s.client)
}

func (s *ShopService) GetPaginated(ctx context.Context, tenant string, q apiclient.PageQuery) (datatable.Page[listing.Listing], error) {
	if q.Sort != "" && !slices.Contains(listing.SortableFields, q.Sort) {
		q.Sort, q.Direction = "", ""
	}
	page, err := s.repo.GetPaginated(s.bind(ctx), tenant, q)
	if err != nil {
		return datatable.Page[listing.Listing]{}, errors.Wrap(err, "list published events")
	}
	return page, nil
}

func (s *ShopService) GetBySlug(ctx context.Context, tenant, slug string) (listing.Listing, error) {
	l, err := s.repo.GetBySlug(s.bind(ctx), tenant, slug)
	if err != nil {
		return listing.Listing{}, errors.Wrap(err, "get published event")
	}
	return l, nil
}
