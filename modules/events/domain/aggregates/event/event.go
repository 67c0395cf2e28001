package event

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusDraft, StatusPublished, StatusCancelled, StatusCompleted}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Editable fields of an event.
const (
	FieldName     = "name"
	FieldVenue    = "venue"
	FieldCapacity = "capacity"
	FieldStatus   = "status"
)

var (
	ErrUnknownField = errors.New("unknown event field")
	ErrInvalidValue = errors.New("invalid event field value")
)

type Event struct {
	id       int64
	slug     string
	name     string
	venue    string
	startsAt time.Time
	status   Status
	capacity int
	sold     int
	currency string
}

func Hydrate(
	id int64,
	slug string,
	name string,
	venue string,
	startsAt time.Time,
	status Status,
	capacity int,
	sold int,
	currency string,
) Event {
	return Event{
		id:       id,
		slug:     slug,
		name:     strings.TrimSpace(name),
		venue:    strings.TrimSpace(venue),
		startsAt: startsAt,
		status:   status,
		capacity: capacity,
		sold:     sold,
		currency: currency,
	}
}

func (e Event) ID() int64           { return e.id }
func (e Event) Slug() string        { return e.slug }
func (e Event) Name() string        { return e.name }
func (e Event) Venue() string       { return e.venue }
func (e Event) StartsAt() time.Time { return e.startsAt }
func (e Event) Status() Status      { return e.status }
func (e Event) Capacity() int       { return e.capacity }
func (e Event) Sold() int           { return e.sold }
func (e Event) Currency() string    { return e.currency }
func (e Event) IsZero() bool        { return e.id == 0 && e.slug == "" }

// Remaining is the number of seats still for sale, never negative.
func (e Event) Remaining() int {
	if e.sold >= e.capacity {
		return 0
	}
	return e.capacity - e.sold
}

// Field returns the editable value of field as text.
func (e Event) Field(field string) (string, error) {
	switch field {
	case FieldName:
		return e.name, nil
	case FieldVenue:
		return e.venue, nil
	case FieldCapacity:
		return strconv.Itoa(e.capacity), nil
	case FieldStatus:
		return string(e.status), nil
	}
	return "", errors.Wrapf(ErrUnknownField, "%q", field)
}

// WithField returns a copy of e with field set from its text value.
func (e Event) WithField(field, value string) (Event, error) {
	switch field {
	case FieldName:
		e.name = strings.TrimSpace(value)
	case FieldVenue:
		e.venue = strings.TrimSpace(value)
	case FieldCapacity:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return e, errors.Wrapf(ErrInvalidValue, "capacity %q", value)
		}
		e.capacity = n
	case FieldStatus:
		s := Status(strings.TrimSpace(value))
		if !s.Valid() {
			return e, errors.Wrapf(ErrInvalidValue, "status %q", value)
		}
		e.status = s
	default:
		return e, errors.Wrapf(ErrUnknownField, "%q", field)
	}
	return e, nil
}

// IsDestructive reports changes that need an explicit confirmation:
// cancelling an event and lowering its capacity.
func IsDestructive(field, old, next string) bool {
	switch field {
	case FieldStatus:
		return Status(next) == StatusCancelled && Status(old) != StatusCancelled
	case FieldCapacity:
		o, errOld := strconv.Atoi(old)
		n, errNew := strconv.Atoi(next)
		return errOld == nil && errNew == nil && n < o
	}
	return false
}
