package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iota-uz/boxoffice/modules/core/infrastructure/backend"
	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/eventbus"
	"github.com/iota-uz/boxoffice/pkg/session"
)

// LoggedInEvent is published after a session signs in. Tenants lists the
// slugs the identity belongs to.
type LoggedInEvent struct {
	SessionID string
	UserID    int64
	Email     string
	Tenants   []string
	Client    ClientInfo
}

type LoggedOutEvent struct {
	SessionID string
	Email     string
	Tenants   []string
	Client    ClientInfo
}

// ClientInfo is the browser a session event came from.
type ClientInfo struct {
	IP        string
	UserAgent string
}

func clientInfo(ctx context.Context) ClientInfo {
	var c ClientInfo
	c.IP, _ = composables.UseIP(ctx)
	c.UserAgent, _ = composables.UseUserAgent(ctx)
	return c
}

func tenantSlugs(identity *session.Identity) []string {
	out := make([]string, 0, len(identity.Tenants))
	for _, t := range identity.Tenants {
		out = append(out, t.Slug)
	}
	return out
}

type AuthService struct {
	repo      *backend.AuthRepository
	publisher eventbus.EventBus
}

func NewAuthService(repo *backend.AuthRepository, publisher eventbus.EventBus) *AuthService {
	return &AuthService{repo: repo, publisher: publisher}
}

// Authenticate signs s in on the backend and stores the resulting identity.
// The XSRF cookie is refreshed first because the backend rotates it on login.
func (s *AuthService) Authenticate(ctx context.Context, sess *session.Session, email, password string, remember bool) (*session.Identity, error) {
	if err := sess.Client.RefreshXSRF(ctx); err != nil {
		return nil, errors.Wrap(err, "prepare login")
	}
	if err := s.repo.Login(ctx, sess.Client, email, password, remember); err != nil {
		return nil, errors.Wrap(err, "login")
	}
	identity, err := s.repo.CurrentUser(ctx, sess.Client)
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	sess.Reset()
	sess.SetIdentity(identity)
	if len(identity.Tenants) == 1 {
		sess.SetTenant(identity.Tenants[0].Slug)
	}
	s.publish(&LoggedInEvent{
		SessionID: sess.ID,
		UserID:    identity.ID,
		Email:     identity.Email,
		Tenants:   tenantSlugs(identity),
		Client:    clientInfo(ctx),
	})
	return identity, nil
}

// Refresh reloads the identity, for instance after tenants changed.
func (s *AuthService) Refresh(ctx context.Context, sess *session.Session) (*session.Identity, error) {
	identity, err := s.repo.CurrentUser(ctx, sess.Client)
	if err != nil {
		return nil, errors.Wrap(err, "refresh user")
	}
	sess.SetIdentity(identity)
	return identity, nil
}

// Logout ends the backend session. Local state is dropped even when the
// backend call fails.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	var (
		email   string
		tenants []string
	)
	if identity, err := sess.Identity(); err == nil {
		email, tenants = identity.Email, tenantSlugs(identity)
	}
	err := s.repo.Logout(ctx, sess.Client)
	sess.Reset()
	s.publish(&LoggedOutEvent{SessionID: sess.ID, Email: email, Tenants: tenants, Client: clientInfo(ctx)})
	if err != nil {
		composables.TryUseLogger(ctx).WithError(err).Warn("backend logout failed")
		return errors.Wrap(err, "logout")
	}
	return nil
}

func (s *AuthService) publish(event any) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}
