package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/iota-uz/boxoffice/modules/storefront/domain/aggregates/listing"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

func listingsPath(tenant string) string {
	return fmt.Sprintf("/api/public/%s/events", url.PathEscape(tenant))
}

type ListingRepository struct{}

func NewListingRepository() listing.Repository {
	return &ListingRepository{}
}

func (r *ListingRepository) GetPaginated(ctx context.Context, tenant string, q apiclient.PageQuery) (datatable.Page[listing.Listing], error) {
	c, err := composables.UseClient(ctx)
	if err != nil {
		return datatable.Page[listing.Listing]{}, err
	}
	page, err := apiclient.GetPage[Listing](ctx, c, listingsPath(tenant), q)
	if err != nil {
		return datatable.Page[listing.Listing]{}, errors.Wrap(err, "public events")
	}
	items := make([]listing.Listing, 0, len(page.Items))
	for _, m := range page.Items {
		items = append(items, ToDomainListing(m))
	}
	return datatable.Page[listing.Listing]{
		Items:       items,
		CurrentPage: page.CurrentPage,
		LastPage:    page.LastPage,
		PageSize:    page.PageSize,
		TotalCount:  page.TotalCount,
	}, nil
}

func (r *ListingRepository) GetBySlug(ctx context.Context, tenant, slug string) (listing.Listing, error) {
	c, err := composables.UseClient(ctx)
	if err != nil {
		return listing.Listing{}, err
	}
	var out struct {
		Data Listing `json:"data"`
	}
	if err := c.Get(ctx, listingsPath(tenant)+"/"+url.PathEscape(slug), nil, &out); err != nil {
		return listing.Listing{}, errors.Wrapf(err, "public event %s", slug)
	}
	return ToDomainListing(out.Data), nil
}
