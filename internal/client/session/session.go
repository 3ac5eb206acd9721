// Package session owns the device credential lifecycle. A Session is an
// explicit object injected into every API-calling component: it reads and
// replaces the persisted token pair, clears it on logout or terminal auth
// failure, and guards the refresh exchange so concurrent callers share a
// single in-flight refresh instead of issuing parallel ones.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/splitroom/internal/client/models"
	"github.com/dmitrijs2005/splitroom/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/splitroom/internal/common"
	"github.com/dmitrijs2005/splitroom/internal/dbx"
)

// ExchangeFunc trades a refresh token for a new access token against the
// backend's refresh endpoint.
type ExchangeFunc func(ctx context.Context, refreshToken string) (string, error)

// Claims is the client-visible subset of the access token payload.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Session is the authenticated device session backed by the local token
// database.
type Session struct {
	db *sql.DB
	sf singleflight.Group
}

// New returns a Session backed by the given database.
func New(db *sql.DB) *Session {
	return &Session{db: db}
}

func (s *Session) repo() tokens.Repository {
	return tokens.NewSQLiteRepository(s.db)
}

// AccessToken returns the stored access token, or "" when absent.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	v, err := s.repo().Get(ctx, tokens.KeyAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (s *Session) RefreshToken(ctx context.Context) (string, error) {
	v, err := s.repo().Get(ctx, tokens.KeyRefreshToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Save persists a freshly issued token pair, replacing any previous
// credential wholesale. Both tokens are written in one transaction.
func (s *Session) Save(ctx context.Context, pair models.TokenPair) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := tokens.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, tokens.KeyAccessToken, []byte(pair.AccessToken)); err != nil {
			return err
		}
		return repo.Set(ctx, tokens.KeyRefreshToken, []byte(pair.RefreshToken))
	})
}

// SaveAccessToken persists a rotated access token after a successful refresh.
// The refresh token is left untouched.
func (s *Session) SaveAccessToken(ctx context.Context, token string) error {
	return s.repo().Set(ctx, tokens.KeyAccessToken, []byte(token))
}

// Clear deletes both tokens (logout or unrecoverable auth failure).
func (s *Session) Clear(ctx context.Context) error {
	return s.repo().Clear(ctx)
}

// Refresh exchanges the stored refresh token for a new access token and
// persists it. Concurrent callers share one in-flight exchange; each gets the
// same result.
//
// If no refresh token is stored the session is already expired. If the
// exchange itself fails both tokens are cleared and common.ErrAuthExpired is
// returned: the caller must route to re-authentication.
func (s *Session) Refresh(ctx context.Context, exchange ExchangeFunc) (string, error) {
	v, err, _ := s.sf.Do("refresh", func() (any, error) {
		refresh, err := s.RefreshToken(ctx)
		if err != nil {
			return "", err
		}
		if refresh == "" {
			return "", common.ErrAuthExpired
		}

		access, err := exchange(ctx, refresh)
		if err != nil {
			if clearErr := s.Clear(ctx); clearErr != nil {
				return "", fmt.Errorf("clearing tokens after failed refresh: %w", clearErr)
			}
			return "", fmt.Errorf("%w: %v", common.ErrAuthExpired, err)
		}

		if err := s.SaveAccessToken(ctx, access); err != nil {
			return "", err
		}
		return access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Identity decodes the stored access token without verifying its signature
// and returns the embedded claims. The token is self-describing but the
// client only uses this for display and startup hints; the server stays
// authoritative on validity.
func (s *Session) Identity(ctx context.Context) (*Claims, error) {
	token, err := s.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, common.ErrorNotFound
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return claims, nil
}

// Authenticated reports whether a stored access token exists and its embedded
// expiry has not passed. A local hint only; an expired-looking token is still
// sent and only dropped when the server rejects it.
func (s *Session) Authenticated(ctx context.Context) bool {
	claims, err := s.Identity(ctx)
	if err != nil {
		return false
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return false
	}
	return true
}
