// Package activity describes audit entries of what happened in the admin.
package activity

import (
	"context"
	"encoding/json"
	"time"
)

type Kind string

const (
	KindSignIn  Kind = "sign_in"
	KindSignOut Kind = "sign_out"
	KindChange  Kind = "change"
	KindRequest Kind = "request"
)

var Kinds = []Kind{KindSignIn, KindSignOut, KindChange, KindRequest}

type Entry struct {
	ID      uint
	Kind    Kind
	Tenant  string
	Actor   string
	Subject string
	Summary string
	// Diff is the RFC 6902 patch from the old to the new state of Subject.
	Diff      json.RawMessage
	Method    string
	Path      string
	Status    int
	IP        string
	UserAgent string
	CreatedAt time.Time
}

type FindParams struct {
	Tenant string
	Kind   Kind
	Limit  int
	Offset int
	// Ascending lists the oldest entries first.
	Ascending bool
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*Entry, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, entry *Entry) error
}
