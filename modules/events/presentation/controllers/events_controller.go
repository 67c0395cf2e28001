package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/iota-uz/boxoffice/components/fields"
	"github.com/iota-uz/boxoffice/components/tables"
	"github.com/iota-uz/boxoffice/modules/core/presentation/templates/layouts"
	"github.com/iota-uz/boxoffice/modules/events/domain/aggregates/event"
	"github.com/iota-uz/boxoffice/modules/events/presentation/templates/pages/events"
	"github.com/iota-uz/boxoffice/modules/events/services"
	"github.com/iota-uz/boxoffice/modules/orders/domain/aggregates/order"
	"github.com/iota-uz/boxoffice/modules/orders/presentation/templates/pages/orders"
	orderservices "github.com/iota-uz/boxoffice/modules/orders/services"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/application"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/currency"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/htmx"
	"github.com/iota-uz/boxoffice/pkg/inlineedit"
	"github.com/iota-uz/boxoffice/pkg/intl"
	"github.com/iota-uz/boxoffice/pkg/middleware"
	"github.com/iota-uz/boxoffice/pkg/session"
)

// Table ids mounted by the events pages.
const (
	EventsTableID      = "events"
	TicketsTableID     = "tickets"
	EventOrdersTableID = "event_orders"
)

type EventsController struct {
	app          application.Application
	eventService *services.EventService
	orderService *orderservices.OrderService
	basePath     string
}

func NewEventsController(app application.Application) application.Controller {
	return &EventsController{
		app:          app,
		eventService: app.Service(services.EventService{}).(*services.EventService),
		orderService: app.Service(orderservices.OrderService{}).(*orderservices.OrderService),
		basePath:     "/t/{tenant}/events",
	}
}

func (c *EventsController) Key() string {
	return c.basePath
}

func (c *EventsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.TenantPage(c.app, configuration.Use())...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.Detail).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/fields/{field}", c.Field).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/{id:[0-9]+}/tickets/{ticket:[0-9]+}/price", c.Price).Methods(http.MethodGet, http.MethodPost)
}

func fieldKey(tenant string, eventID int64, field string) string {
	return fmt.Sprintf("events/%s/%d/%s", tenant, eventID, field)
}

func priceKey(tenant string, ticketID int64) string {
	return fmt.Sprintf("tickets/%s/%d/price", tenant, ticketID)
}

func eventBase(tenant string, eventID int64) string {
	return events.DetailHref(tenant, eventID)
}

func fieldLabel(ctx context.Context) func(string) string {
	return func(field string) string {
		return intl.T(ctx, "Events.Fields."+field, field)
	}
}

func routeID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "route %s", name)
	}
	return id, nil
}

func (c *EventsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, err := composables.UseTenant(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page, err := tables.NewPage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	table, err := tables.Mount(page, tables.Spec[event.Event]{
		ID:      EventsTableID,
		Columns: events.Columns(ctx, tenant),
		Fetch: func(ctx context.Context, q apiclient.PageQuery) (datatable.Page[event.Event], error) {
			return c.eventService.GetPaginated(ctx, tenant, q)
		},
		PerPage: configuration.Use().PageSize,
		Params:  mux.Vars(r),
	})
	if err != nil {
		layouts.WriteBackendError(w, r, err)
		return
	}
	props := &events.IndexProps{Table: table.Component(), ReplaceURL: page.ReplaceURL(w)}
	templ.Handler(events.Index(props)).ServeHTTP(w, r)
}

// Detail renders the editable event with its ticket types and orders.
// Editors left open by an earlier visit are discarded.
func (c *EventsController) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenant, err := composables.UseTenant(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := routeID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e, err := c.eventService.GetByID(ctx, tenant, id)
	if err != nil {
		layouts.WriteBackendError(w, r, err)
		return
	}
	page, err := tables.NewPage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sess := page.Session
	sess.ResetFields(fmt.Sprintf("events/%s/%d/", tenant, id))
	sess.ResetFields(fmt.Sprintf("tickets/%s/", tenant))

	fieldComponents := make([]templ.Component, 0, len(services.EditableFields))
	for _, name := range services.EditableFields {
		f := c.eventField(ctx, sess, tenant, e, name)
		fieldComponents = append(fieldComponents, c.fieldComponent(ctx, tenant, id, name, f))
	}

	perPage := configuration.Use().PageSize
	tickets, err := tables.Mount(page, tables.Spec[event.TicketType]{
		ID: TicketsTableID,
		Columns: events.TicketColumns(ctx, func(t event.TicketType) templ.Component {
			return c.priceComponent(ctx, tenant, t, c.priceField(ctx, sess, tenant, t))
		}),
		Fetch: func(ctx context.Context, q apiclient.PageQuery) (datatable.Page[event.TicketType], error) {
			return c.eventService.TicketTypes(ctx, tenant, id, q)
		},
		PerPage: perPage,
		Params:  mux.Vars(r),
	})
	if err != nil {
		layouts.WriteBackendError(w, r, err)
		return
	}
	eventOrders, err := tables.Mount(page, tables.Spec[order.Order]{
		ID:      EventOrdersTableID,
		Columns: orders.Columns(ctx),
		Fetch: func(ctx context.Context, q apiclient.PageQuery) (datatable.Page[order.Order], error) {
			return c.orderService.ForEvent(ctx, tenant, id, q)
		},
		PerPage: perPage,
		Params:  mux.Vars(r),
	})
	if err != nil {
		layouts.WriteBackendError(w, r, err)
		return
	}

	props := &events.DetailProps{
		Tenant:     tenant,
		Event:      e,
		Fields:     fieldComponents,
		Tickets:    tickets.Component(),
		Orders:     eventOrders.Component(),
		ReplaceURL: page.ReplaceURL(w),
	}
	templ.Handler(events.Detail(props)).ServeHTTP(w, r)
}

func (c *EventsController) eventField(ctx context.Context, sess *session.Session, tenant string, e event.Event, name string) *inlineedit.Field {
	return sess.Field(fieldKey(tenant, e.ID(), name), func() *inlineedit.Field {
		value, _ := e.Field(name)
		return inlineedit.New(inlineedit.Options{
			Name:  name,
			Value: value,
			Destructive: func(old, next string) bool {
				return event.IsDestructive(name, old, next)
			},
			Normalize: func(draft string) (string, error) {
				return services.NormalizeField(name, draft)
			},
			Message: saveMessage(ctx, fieldLabel(ctx)),
		})
	})
}

func (c *EventsController) fieldComponent(ctx context.Context, tenant string, eventID int64, name string, f *inlineedit.Field) templ.Component {
	props := fields.Props{
		ID:       "event-field-" + name,
		Label:    fieldLabel(ctx)(name),
		Snapshot: f.Snapshot(),
		Action:   eventBase(tenant, eventID) + "/fields/" + url.PathEscape(name),
	}
	switch name {
	case event.FieldCapacity:
		props.InputType = "number"
		props.InputMode = "numeric"
	case event.FieldStatus:
		for _, s := range event.Statuses {
			props.Options = append(props.Options, fields.Option{Value: string(s), Label: events.StatusLabel(ctx, s)})
		}
		props.Display = func(v string) string { return events.StatusLabel(ctx, event.Status(v)) }
	}
	return fields.Inline(props)
}

// Field drives one inline editor of the event.
func (c *EventsController) Field(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := composables.TryUseLogger(ctx)
	tenant, err := composables.UseTenant(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := routeID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := mux.Vars(r)["field"]
	if _, err := (event.Event{}).Field(name); err != nil {
		http.NotFound(w, r)
		return
	}
	sess, err := composables.UseSession(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	e, err := c.eventService.GetByID(ctx, tenant, id)
	if err != nil {
		layouts.WriteBackendError(w, r, err)
		return
	}
	f := c.eventField(ctx, sess, tenant, e, name)

	if r.Method == http.MethodPost {
		dto, err := composables.UseForm(&fields.FormDTO{}, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		saved := false
		err = fields.Apply(ctx, f, dto, func(ctx context.Context, value string) error {
			if _, err := c.eventService.UpdateField(ctx, tenant, e, name, value); err != nil {
				return err
			}
			saved = true
			return nil
		})
		switch {
		case err == nil:
			if saved {
				sess.Toasts.Success(ctx, intl.T(ctx, "Events.Saved", "Saved"))
			}
		case errors.Is(err, fields.ErrUnknownOp):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case apiclient.IsAuthError(err):
			layouts.WriteBackendError(w, r, err)
			return
		case errors.Is(err, inlineedit.ErrInvalidTransition):
			logger.WithError(err).WithField("field", name).Debug("stale inline edit operation")
		default:
			logger.WithError(err).WithField("field", name).Warn("inline edit save failed")
		}
	}

	if err := tables.Notify(w, sess.Toasts); err != nil {
		logger.WithError(err).Warn("failed to encode notifications")
	}
	templ.Handler(c.fieldComponent(ctx, tenant, id, name, f)).ServeHTTP(w, r)
}

func (c *EventsController) priceField(ctx context.Context, sess *session.Session, tenant string, t event.TicketType) *inlineedit.Field {
	return sess.Field(priceKey(tenant, t.ID()), func() *inlineedit.Field {
		code := t.Currency()
		return inlineedit.New(inlineedit.Options{
			Name:  "price",
			Value: services.PriceText(t.Price(), code),
			Normalize: func(draft string) (string, error) {
				return services.NormalizePrice(draft, code)
			},
			Message: saveMessage(ctx, func(string) string {
				return intl.T(ctx, "Events.Tickets.Price", "Price")
			}),
		})
	})
}

func (c *EventsController) priceComponent(ctx context.Context, tenant string, t event.TicketType, f *inlineedit.Field) templ.Component {
	code := t.Currency()
	return fields.Inline(fields.Props{
		ID:       fmt.Sprintf("ticket-price-%d", t.ID()),
		Label:    intl.T(ctx, "Events.Tickets.Price", "Price"),
		Snapshot: f.Snapshot(),
		Action:   fmt.Sprintf("%s/tickets/%d/price", eventBase(tenant, t.EventID()), t.ID()),
		Display: func(v string) string {
			price, err := services.ParsePrice(v, code)
			if err != nil {
				return v
			}
			return currency.Format(price, code)
		},
		InputMode: "decimal",
		Class:     "min-w-40",
	})
}

// mountedTicket finds a ticket type among the rows of the session's mounted
// ticket table.
func mountedTicket(sess *session.Session, ticketID int64) (event.TicketType, bool) {
	h, ok := sess.Tables.Get(TicketsTableID)
	if !ok {
		return event.TicketType{}, false
	}
	ctrl, ok := h.(*datatable.Controller[event.TicketType])
	if !ok {
		return event.TicketType{}, false
	}
	for _, t := range ctrl.State().Data.Items {
		if t.ID() == ticketID {
			return t, true
		}
	}
	return event.TicketType{}, false
}

// Price drives the inline price editor of a ticket type.
func (c *EventsController) Price(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := composables.TryUseLogger(ctx)
	tenant, err := composables.UseTenant(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ticketID, err := routeID(r, "ticket")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, err := composables.UseSession(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	t, ok := mountedTicket(sess, ticketID)
	if !ok {
		logger.WithField("ticket", ticketID).Info("price edit for a ticket that is not mounted")
		htmx.Refresh(w)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	f := c.priceField(ctx, sess, tenant, t)

	if r.Method == http.MethodPost {
		dto, err := composables.UseForm(&fields.FormDTO{}, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		saved := false
		err = fields.Apply(ctx, f, dto, func(ctx context.Context, value string) error {
			// The row may predate an earlier save; the editor holds the stored price.
			before := t
			if p, err := services.ParsePrice(f.Value(), t.Currency()); err == nil {
				before = t.WithPrice(p)
			}
			if _, err := c.eventService.UpdateTicketPrice(ctx, tenant, before, value); err != nil {
				return err
			}
			saved = true
			return nil
		})
		switch {
		case err == nil:
			if saved {
				sess.Toasts.Success(ctx, intl.T(ctx, "Events.Saved", "Saved"))
			}
		case errors.Is(err, fields.ErrUnknownOp):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case apiclient.IsAuthError(err):
			layouts.WriteBackendError(w, r, err)
			return
		case errors.Is(err, inlineedit.ErrInvalidTransition):
			logger.WithError(err).Debug("stale price edit operation")
		default:
			logger.WithError(err).WithField("ticket", ticketID).Warn("price save failed")
		}
	}

	if err := tables.Notify(w, sess.Toasts); err != nil {
		logger.WithError(err).Warn("failed to encode notifications")
	}
	templ.Handler(c.priceComponent(ctx, tenant, t, f)).ServeHTTP(w, r)
}
