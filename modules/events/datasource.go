package events

import (
	"context"
	"strings"

	icons "github.com/iota-uz/icons/phosphor"

	eventpages "github.com/iota-uz/boxoffice/modules/events/presentation/templates/pages/events"
	"github.com/iota-uz/boxoffice/modules/events/services"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/spotlight"
)

const spotlightLimit = 5

// eventsDataSource searches the events of the session's current tenant.
type eventsDataSource struct {
	service *services.EventService
}

func (d *eventsDataSource) Find(ctx context.Context, q string) []spotlight.Item {
	q = strings.TrimSpace(q)
	if len(q) < 2 {
		return nil
	}
	sess, err := composables.UseSession(ctx)
	if err != nil || !sess.Authenticated() || sess.Tenant() == "" {
		return nil
	}
	tenant := sess.Tenant()
	page, err := d.service.GetPaginated(ctx, tenant, apiclient.PageQuery{Page: 1, PerPage: spotlightLimit, Search: q})
	if err != nil {
		composables.TryUseLogger(ctx).WithError(err).Warn("spotlight: event search failed")
		return nil
	}
	items := make([]spotlight.Item, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, spotlight.LinkItem(e.Name(), eventpages.DetailHref(tenant, e.ID()), icons.List(icons.Props{Size: "16"})))
	}
	return items
}
