package client

import "errors"

var (
	// ErrUnavailable means no response reached the client (network failure).
	// Transient: the caller may retry.
	ErrUnavailable = errors.New("server unavailable")

	// ErrRoomNotFound means the backend reports no room under the given code.
	ErrRoomNotFound = errors.New("room not found")

	// ErrSelectionRejected means the backend refused a selection mutation.
	ErrSelectionRejected = errors.New("item selection rejected")
)
