package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-faster/errors"

	"github.com/iota-uz/boxoffice/modules/events/domain/aggregates/event"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

func eventsPath(tenant string) string {
	return fmt.Sprintf("/api/tenants/%s/events", url.PathEscape(tenant))
}

func eventPath(tenant string, id int64) string {
	return fmt.Sprintf("%s/%d", eventsPath(tenant), id)
}

func ticketTypesPath(tenant string, eventID int64) string {
	return eventPath(tenant, eventID) + "/ticket-types"
}

func ticketTypePath(tenant string, id int64) string {
	return fmt.Sprintf("/api/tenants/%s/ticket-types/%d", url.PathEscape(tenant), id)
}

type EventRepository struct{}

func NewEventRepository() event.Repository {
	return &EventRepository{}
}

func (r *EventRepository) GetPaginated(ctx context.Context, tenant string, q apiclient.PageQuery) (datatable.Page[event.Event], error) {
	c, err := composables.UseClient(ctx)
	if err != nil {
		return datatable.Page[event.Event]{}, err
	}
	page, err := apiclient.GetPage[Event](ctx, c, eventsPath(tenant), q)
	if err != nil {
		return datatable.Page[event.Event]{}, errors.Wrap(err, "events")
	}
	return mapPage(page, ToDomainEvent), nil
}

func (r *EventRepository) GetByID(ctx context.Context, tenant string, id int64) (event.Event, error) {
	c, err := composables.UseClient(ctx)
	if err != nil {
		return event.Event{}, err
	}
	var out envelope[Event]
	if err := c.Get(ctx, eventPath(tenant, id), nil, &out); err != nil {
		return event.Event{}, errors.Wrapf(err, "event %d", id)
	}
	return ToDomainEvent(out.Data), nil
}

// mergePatch is the RFC 7386 document turning before into after.
func mergePatch(before, after any) ([]byte, error) {
	original, err := json.Marshal(before)
	if err != nil {
		return nil, errors.Wrap(err, "marshal original")
	}
	modified, err := json.Marshal(after)
	if err != nil {
		return nil, errors.Wrap(err, "marshal modified")
	}
	patch, err := jsonpatch.CreateMergePatch(original, modified)
	if err != nil {
		return nil, errors.Wrap(err, "create merge patch")
	}
	return patch, nil
}

func isEmptyPatch(patch []byte) bool {
	return bytes.Equal(bytes.TrimSpace(patch), []byte("{}"))
}

func (r *EventRepository) Update(ctx context.Context, tenant string, before, after event.Event) (event.Event, error) {
	patch, err := mergePatch(ToDBEvent(before), ToDBEvent(after))
	if err != nil {
		return event.Event{}, err
	}
	if isEmptyPatch(patch) {
		return before, nil
	}
	c, err := composables.UseClient(ctx)
	if err != nil {
		return event.Event{}, err
	}
	var out envelope[Event]
	if err := c.MergePatch(ctx, eventPath(tenant, before.ID()), patch, &out); err != nil {
		return event.Event{}, errors.Wrapf(err, "patch event %d", before.ID())
	}
	if out.Data.ID == 0 {
		// No body: the backend accepted the patch as sent.
		return after, nil
	}
	return ToDomainEvent(out.Data), nil
}

func (r *EventRepository) TicketTypes(ctx context.Context, tenant string, eventID int64, q apiclient.PageQuery) (datatable.Page[event.TicketType], error) {
	c, err := composables.UseClient(ctx)
	if err != nil {
		return datatable.Page[event.TicketType]{}, err
	}
	page, err := apiclient.GetPage[TicketType](ctx, c, ticketTypesPath(tenant, eventID), q)
	if err != nil {
		return datatable.Page[event.TicketType]{}, errors.Wrap(err, "ticket types")
	}
	return mapPage(page, ToDomainTicketType), nil
}

func (r *EventRepository) UpdateTicketType(ctx context.Context, tenant string, before, after event.TicketType) (event.TicketType, error) {
	patch, err := mergePatch(ToDBTicketType(before), ToDBTicketType(after))
	if err != nil {
		return event.TicketType{}, err
	}
	if isEmptyPatch(patch) {
		return before, nil
	}
	c, err := composables.UseClient(ctx)
	if err != nil {
		return event.TicketType{}, err
	}
	var out envelope[TicketType]
	if err := c.MergePatch(ctx, ticketTypePath(tenant, before.ID()), patch, &out); err != nil {
		return event.TicketType{}, errors.Wrapf(err, "patch ticket type %d", before.ID())
	}
	if out.Data.ID == 0 {
		return after, nil
	}
	return ToDomainTicketType(out.Data), nil
}
