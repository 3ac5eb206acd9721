// Package services contains the application services for the splitroom
// client: authentication lifecycle and room interaction.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/splitroom/internal/client/client"
	"github.com/dmitrijs2005/splitroom/internal/client/session"
	"github.com/dmitrijs2005/splitroom/internal/logging"
)

// AuthService defines the authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the token pair.
//   - Register: create a new account; the user logs in separately.
//   - Logout: best-effort server logout; local tokens are always cleared.
//   - Authenticated: local hint whether a usable credential is stored.
//   - Identity: claims embedded in the stored access token.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, name, email string, password []byte) error
	Logout(ctx context.Context) error
	Authenticated(ctx context.Context) bool
	Identity(ctx context.Context) (*session.Claims, error)
}

// authService is the concrete AuthService backed by the remote Client and
// the local Session.
type authService struct {
	client  client.Client
	session *session.Session
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session.
func NewAuthService(client client.Client, sess *session.Session, log logging.Logger) AuthService {
	return &authService{client: client, session: sess, log: log}
}

// Login exchanges credentials for a token pair and persists it as the one
// live device credential.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	pair, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.session.Save(ctx, *pair); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// Register creates a new account on the server.
func (a *authService) Register(ctx context.Context, name, email string, password []byte) error {
	if err := a.client.Register(ctx, name, email, string(password)); err != nil {
		return fmt.Errorf("registration error: %w", err)
	}
	return nil
}

// Logout tells the server to invalidate the session and clears the local
// tokens. The server call is best effort: a failure is logged and local state
// is wiped regardless.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed, clearing local tokens anyway", "error", err)
	}
	return a.session.Clear(ctx)
}

func (a *authService) Authenticated(ctx context.Context) bool {
	return a.session.Authenticated(ctx)
}

func (a *authService) Identity(ctx context.Context) (*session.Claims, error) {
	return a.session.Identity(ctx)
}
