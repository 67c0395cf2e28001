package dtos

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/boxoffice/modules/storefront/domain/aggregates/listing"
	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/constants"
	"github.com/iota-uz/boxoffice/pkg/currency"
	"github.com/iota-uz/boxoffice/pkg/datatable"
)

// ListQueryDTO is the query string of the public listing API.
type ListQueryDTO struct {
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PerPage   int    `form:"per_page" validate:"omitempty,min=1,max=100"`
	Sort      string `form:"sort" validate:"omitempty,oneof=starts_at name"`
	Direction string `form:"direction" validate:"omitempty,oneof=asc desc"`
}

// Ok reports the invalid query fields keyed by parameter name.
func (d *ListQueryDTO) Ok() (map[string]string, bool) {
	out := map[string]string{}
	err := constants.Validate.Struct(d)
	if err == nil {
		return out, true
	}
	names := map[string]string{"Page": "page", "PerPage": "per_page", "Sort": "sort", "Direction": "direction"}
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			out["field."+names[fe.Field()]] = fe.Tag()
		}
	}
	return out, false
}

func (d *ListQueryDTO) Query(defaultPerPage int) apiclient.PageQuery {
	q := apiclient.PageQuery{Page: d.Page, PerPage: d.PerPage, Sort: d.Sort, Direction: d.Direction}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = defaultPerPage
	}
	if q.Sort != "" && q.Direction == "" {
		q.Direction = "asc"
	}
	return q
}

type TicketDTO struct {
	Name         string `json:"name"`
	Price        string `json:"price"`
	PriceDisplay string `json:"price_display"`
	Available    int    `json:"available"`
	SoldOut      bool   `json:"sold_out"`
}

type ListingDTO struct {
	Slug             string      `json:"slug"`
	Name             string      `json:"name"`
	Venue            string      `json:"venue"`
	StartsAt         time.Time   `json:"starts_at"`
	PriceFrom        string      `json:"price_from"`
	PriceFromDisplay string      `json:"price_from_display"`
	Currency         string      `json:"currency"`
	Available        int         `json:"available"`
	SoldOut          bool        `json:"sold_out"`
	Tickets          []TicketDTO `json:"tickets,omitempty"`
}

func ToListingDTO(l listing.Listing) ListingDTO {
	tickets := make([]TicketDTO, 0, len(l.Tickets()))
	for _, t := range l.Tickets() {
		tickets = append(tickets, TicketDTO{
			Name:         t.Name,
			Price:        t.Price.String(),
			PriceDisplay: currency.Format(t.Price, t.Currency),
			Available:    t.Available,
			SoldOut:      t.SoldOut(),
		})
	}
	return ListingDTO{
		Slug:             l.Slug(),
		Name:             l.Name(),
		Venue:            l.Venue(),
		StartsAt:         l.StartsAt(),
		PriceFrom:        l.PriceFrom().String(),
		PriceFromDisplay: currency.Format(l.PriceFrom(), l.Currency()),
		Currency:         l.Currency(),
		Available:        l.Available(),
		SoldOut:          l.SoldOut(),
		Tickets:          tickets,
	}
}

// PageDTO mirrors the backend pagination envelope.
type PageDTO struct {
	Data        []ListingDTO `json:"data"`
	CurrentPage int          `json:"current_page"`
	LastPage    int          `json:"last_page"`
	PerPage     int          `json:"per_page"`
	Total       int          `json:"total"`
}

func ToPageDTO(p datatable.Page[listing.Listing]) PageDTO {
	items := make([]ListingDTO, 0, len(p.Items))
	for _, l := range p.Items {
		items = append(items, ToListingDTO(l))
	}
	return PageDTO{
		Data:        items,
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		PerPage:     p.PageSize,
		Total:       p.TotalCount,
	}
}
