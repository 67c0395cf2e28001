// Package session keeps per-browser presentation state in memory: the
// backend client with its cookie jar, mounted tables, pending toasts and
// open inline editors.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/datatable"
	"github.com/iota-uz/boxoffice/pkg/inlineedit"
	"github.com/iota-uz/boxoffice/pkg/metrics"
	"github.com/iota-uz/boxoffice/pkg/toast"
)

var ErrNotAuthenticated = errors.New("session: not authenticated")

type TenantRef struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Identity is the authenticated backend user.
type Identity struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Tenants []TenantRef `json:"tenants"`
}

func (i *Identity) HasTenant(slug string) bool {
	if i == nil {
		return false
	}
	for _, t := range i.Tenants {
		if t.Slug == slug {
			return true
		}
	}
	return false
}

type Session struct {
	ID     string
	Client *apiclient.Client
	Tables *datatable.Registry
	Toasts *toast.Queue

	mu       sync.Mutex
	identity *Identity
	tenant   string
	fields   map[string]*inlineedit.Field
	lastSeen time.Time
}

func (s *Session) Identity() (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil, ErrNotAuthenticated
	}
	return s.identity, nil
}

func (s *Session) SetIdentity(id *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = id
}

// Tenant returns the slug of the last tenant the user worked in.
func (s *Session) Tenant() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tenant
}

func (s *Session) SetTenant(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenant = slug
}

// Reset forgets the identity and all presentation state, keeping the
// backend client so its cookie jar can be reused for the next login.
func (s *Session) Reset() {
	s.mu.Lock()
	s.identity = nil
	s.tenant = ""
	s.fields = make(map[string]*inlineedit.Field)
	s.mu.Unlock()
	s.Tables.Clear()
	s.Toasts.Drain()
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil
}

// Field returns the editor stored under key, creating it with build.
func (s *Session) Field(key string, build func() *inlineedit.Field) *inlineedit.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fields[key]; ok {
		return f
	}
	f := build()
	s.fields[key] = f
	return f
}

// ResetField drops the editor stored under key.
func (s *Session) ResetField(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fields, key)
}

// ResetFields drops every editor whose key starts with prefix.
func (s *Session) ResetFields(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.fields {
		if strings.HasPrefix(key, prefix) {
			delete(s.fields, key)
		}
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// ClientFactory builds the backend client of a new session.
type ClientFactory func() (*apiclient.Client, error)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	factory  ClientFactory
	now      func() time.Time
}

func NewStore(ttl time.Duration, factory ClientFactory) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
	}
}

func (st *Store) Create() (*Session, error) {
	client, err := st.factory()
	if err != nil {
		return nil, errors.Wrap(err, "session: backend client")
	}
	s := &Session{
		ID:       uuid.NewString(),
		Client:   client,
		Tables:   datatable.NewRegistry(),
		Toasts:   toast.NewQueue(),
		fields:   make(map[string]*inlineedit.Field),
		lastSeen: st.now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s, nil
}

// Get returns a live session and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	now := st.now()
	if st.ttl > 0 && s.idleSince(now) > st.ttl {
		st.Delete(id)
		return nil, false
	}
	s.touch(now)
	return s, true
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle longer than the TTL and reports how many.
func (st *Store) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on every tick until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration, logger *logrus.Entry) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 && logger != nil {
				logger.WithField("removed", n).Info("session: swept idle sessions")
			}
			metrics.ActiveSessions.Set(float64(st.Len()))
		}
	}
}
