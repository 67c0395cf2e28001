package backend

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/session"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	loginPath  = "/login"
	logoutPath = "/logout"
	userPath   = "/api/user"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// AuthRepository talks to the backend session endpoints with the client of
// the browser session.
type AuthRepository struct{}

func NewAuthRepository() *AuthRepository {
	return &AuthRepository{}
}

// Login authenticates the session cookie held by c.
func (r *AuthRepository) Login(ctx context.Context, c *apiclient.Client, email, password string, remember bool) error {
	err := c.Post(ctx, loginPath, credentials{Email: email, Password: password, Remember: remember}, nil)
	if err == nil {
		return nil
	}
	if errors.Is(err, apiclient.ErrValidation) || errors.Is(err, apiclient.ErrUnauthorized) {
		return errors.Wrap(ErrInvalidCredentials, err.Error())
	}
	return errors.Wrap(err, "backend login")
}

func (r *AuthRepository) CurrentUser(ctx context.Context, c *apiclient.Client) (*session.Identity, error) {
	var identity session.Identity
	if err := c.Get(ctx, userPath, nil, &identity); err != nil {
		return nil, errors.Wrap(err, "backend current user")
	}
	return &identity, nil
}

func (r *AuthRepository) Logout(ctx context.Context, c *apiclient.Client) error {
	if err := c.Post(ctx, logoutPath, nil, nil); err != nil {
		return errors.Wrap(err, "backend logout")
	}
	return nil
}
