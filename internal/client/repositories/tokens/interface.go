// Package tokens persists the device credential (access and refresh tokens)
// across process restarts.
package tokens

import (
	"context"
)

// Fixed key names under which the credential parts are stored.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// Repository is a small persisted key/value holder for tokens.
// Get returns (nil, nil) when the key is absent. The store is not
// synchronized beyond what the database guarantees; callers must not assume
// atomic read-modify-write across concurrent callers.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
