package services

import (
	"context"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/iota-uz/boxoffice/modules/events/domain/aggregates/event"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/constants"
	"github.com/iota-uz/boxoffice/pkg/currency"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/eventbus"
)

// fieldRules are validator tags applied to submitted field values.
var fieldRules = map[string]string{
	event.FieldName:     "required,max=120",
	event.FieldVenue:    "max=200",
	event.FieldCapacity: "required,number",
	event.FieldStatus:   "required,oneof=draft published cancelled completed",
}

// EditableFields lists the fields that can be edited inline, in display order.
var EditableFields = []string{event.FieldName, event.FieldVenue, event.FieldCapacity, event.FieldStatus}

type EventService struct {
	repo      event.Repository
	publisher eventbus.EventBus
}

func NewEventService(repo event.Repository, publisher eventbus.EventBus) *EventService {
	return &EventService{repo: repo, publisher: publisher}
}

func (s *EventService) GetPaginated(ctx context.Context, tenant string, q apiclient.PageQuery) (datatable.Page[event.Event], error) {
	if q.Sort != "" && !slices.Contains(event.SortableFields, q.Sort) {
		q.Sort, q.Direction = "", ""
	}
	page, err := s.repo.GetPaginated(ctx, tenant, q)
	if err != nil {
		return datatable.Page[event.Event]{}, errors.Wrap(err, "list events")
	}
	return page, nil
}

func (s *EventService) GetByID(ctx context.Context, tenant string, id int64) (event.Event, error) {
	e, err := s.repo.GetByID(ctx, tenant, id)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "get event")
	}
	return e, nil
}

// Each visits every event matching q, page by page.
func (s *EventService) Each(ctx context.Context, tenant string, q apiclient.PageQuery, visit func(event.Event) error) error {
	if q.Page < 1 {
		q.Page = 1
	}
	for {
		page, err := s.GetPaginated(ctx, tenant, q)
		if err != nil {
			return err
		}
		for _, e := range page.Items {
			if err := visit(e); err != nil {
				return err
			}
		}
		if page.CurrentPage >= page.LastPage || len(page.Items) == 0 {
			return nil
		}
		q.Page = page.CurrentPage + 1
	}
}

// NormalizeField trims a submitted value and checks it against the field's rules.
func NormalizeField(field, value string) (string, error) {
	rule, ok := fieldRules[field]
	if !ok {
		return "", errors.Wrapf(event.ErrUnknownField, "%q", field)
	}
	value = strings.TrimSpace(value)
	if field == event.FieldStatus {
		value = strings.ToLower(value)
	}
	if err := constants.Validate.Var(value, rule); err != nil {
		return "", err
	}
	return value, nil
}

// UpdateField saves one field of the event and returns the stored event.
func (s *EventService) UpdateField(ctx context.Context, tenant string, before event.Event, field, value string) (event.Event, error) {
	value, err := NormalizeField(field, value)
	if err != nil {
		return event.Event{}, err
	}
	after, err := before.WithField(field, value)
	if err != nil {
		return event.Event{}, err
	}
	saved, err := s.repo.Update(ctx, tenant, before, after)
	if err != nil {
		return event.Event{}, errors.Wrapf(err, "update %s", field)
	}
	s.publisher.Publish(&event.UpdatedEvent{Tenant: tenant, Actor: composables.UseActor(ctx), Field: field, Before: before, After: saved})
	return saved, nil
}

func (s *EventService) TicketTypes(ctx context.Context, tenant string, eventID int64, q apiclient.PageQuery) (datatable.Page[event.TicketType], error) {
	page, err := s.repo.TicketTypes(ctx, tenant, eventID, q)
	if err != nil {
		return datatable.Page[event.TicketType]{}, errors.Wrap(err, "list ticket types")
	}
	return page, nil
}

// PriceText is the editable form of a stored price: the currency's own
// decimal mark and no grouping, so "12.5" BRL reads "12,50".
func PriceText(price decimal.Decimal, code string) string {
	in, err := currency.FromValue(price, code)
	if err != nil {
		return price.String()
	}
	return in.Raw()
}

// ParsePrice reads a price typed in the currency's own notation.
func ParsePrice(text, code string) (decimal.Decimal, error) {
	in, err := currency.Parse(text, code)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return in.Value(), nil
}

// NormalizePrice cleans a typed amount into PriceText form, so an untouched
// draft compares equal to the stored price.
func NormalizePrice(raw, code string) (string, error) {
	price, err := ParsePrice(raw, code)
	if err != nil {
		return "", err
	}
	if price.IsNegative() {
		return "", errors.New("price must not be negative")
	}
	return PriceText(price, code), nil
}

// UpdateTicketPrice saves a new price given in PriceText form.
func (s *EventService) UpdateTicketPrice(ctx context.Context, tenant string, before event.TicketType, value string) (event.TicketType, error) {
	price, err := ParsePrice(value, before.Currency())
	if err != nil {
		return event.TicketType{}, errors.Wrap(err, "price")
	}
	saved, err := s.repo.UpdateTicketType(ctx, tenant, before, before.WithPrice(price))
	if err != nil {
		return event.TicketType{}, errors.Wrap(err, "update ticket price")
	}
	s.publisher.Publish(&event.TicketPriceChangedEvent{
		Tenant:       tenant,
		Actor:        composables.UseActor(ctx),
		EventID:      before.EventID(),
		TicketTypeID: before.ID(),
		Old:          before.Price(),
		New:          saved.Price(),
		Currency:     saved.Currency(),
	})
	return saved, nil
}
