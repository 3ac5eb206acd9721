// Package common defines shared constants and sentinel errors used across
// the splitroom client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors. ErrAuthExpired is terminal for the session:
	// stored tokens are cleared and the caller must re-authenticate.
	ErrAuthExpired = errors.New("authentication expired")
)
