// Package client implements the API client for the splitroom backend.
// Authenticated requests carry a bearer access token; when the server rejects
// it, the client refreshes the token once through the session and resends the
// original request exactly once.
package client

import (
	"context"

	"github.com/dmitrijs2005/splitroom/internal/client/models"
)

// Client is the backend API surface consumed by the application services.
type Client interface {
	// Login exchanges credentials for a token pair. The pair is returned to
	// the caller; persisting it is the session's job.
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)

	// Register creates a new account. The user logs in separately afterwards.
	Register(ctx context.Context, name, email, password string) error

	// RefreshToken trades a refresh token for a new access token. Sent
	// without an Authorization header.
	RefreshToken(ctx context.Context, refreshToken string) (string, error)

	// Logout invalidates the session server-side. Best effort: local tokens
	// are cleared by the caller regardless of the outcome.
	Logout(ctx context.Context) error

	// CreateRoom uploads a receipt image; the backend extracts the items and
	// creates a room as a side effect.
	CreateRoom(ctx context.Context, image []byte, contentType string) (*models.Room, error)

	// GetRoom fetches the authoritative state of a room by its code.
	GetRoom(ctx context.Context, code string) (*models.Room, error)

	// SelectItem asserts the requesting user's claim on an item. A duplicate
	// assertion is a no-op server-side; the client performs no local dedup.
	SelectItem(ctx context.Context, code string, itemIndex int) error

	// DeselectItem removes the requesting user's claim on an item. Removing
	// an absent claim is not an error.
	DeselectItem(ctx context.Context, code string, itemIndex int) error

	// GetSplits fetches the server-computed per-user breakdown for a room.
	GetSplits(ctx context.Context, code string) (map[string]models.UserSplit, error)
}
