package persistence

import (
	"context"
	"slices"
	"sync"

	"github.com/go-faster/errors"

	"github.com/iota-uz/boxoffice/modules/logging/domain/entities/activity"
)

const DefaultCapacity = 500

// ActivityRepository keeps the most recent entries in a fixed size ring.
// Older entries are overwritten once the ring is full.
type ActivityRepository struct {
	mu      sync.RWMutex
	entries []*activity.Entry
	next    int
	full    bool
	lastID  uint
}

func NewActivityRepository(capacity int) *ActivityRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ActivityRepository{entries: make([]*activity.Entry, capacity)}
}

func (r *ActivityRepository) Create(_ context.Context, entry *activity.Entry) error {
	if entry == nil {
		return errors.New("activity entry is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	entry.ID = r.lastID
	stored := *entry
	r.entries[r.next] = &stored
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	return nil
}

// matching returns the entries selected by params, oldest first.
func (r *ActivityRepository) matching(params *activity.FindParams) []*activity.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ordered := make([]*activity.Entry, 0, len(r.entries))
	if r.full {
		ordered = append(ordered, r.entries[r.next:]...)
	}
	ordered = append(ordered, r.entries[:r.next]...)
	if params == nil {
		return ordered
	}
	return slices.DeleteFunc(ordered, func(e *activity.Entry) bool {
		if params.Tenant != "" && e.Tenant != params.Tenant {
			return true
		}
		return params.Kind != "" && e.Kind != params.Kind
	})
}

func (r *ActivityRepository) List(_ context.Context, params *activity.FindParams) ([]*activity.Entry, error) {
	if params == nil {
		params = &activity.FindParams{}
	}
	matched := r.matching(params)
	if !params.Ascending {
		slices.Reverse(matched)
	}
	if params.Offset >= len(matched) {
		return []*activity.Entry{}, nil
	}
	matched = matched[params.Offset:]
	if params.Limit > 0 && len(matched) > params.Limit {
		matched = matched[:params.Limit]
	}
	out := make([]*activity.Entry, len(matched))
	for i, e := range matched {
		c := *e
		out[i] = &c
	}
	return out, nil
}

func (r *ActivityRepository) Count(_ context.Context, params *activity.FindParams) (int64, error) {
	return int64(len(r.matching(params))), nil
}
