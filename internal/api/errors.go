package api

import "errors"

var (
	// ErrUnavailable indicates the tracker server is unreachable.
	ErrUnavailable = errors.New("tracker server unavailable")

	// ErrUnauthorized indicates the session token was missing or rejected.
	ErrUnauthorized = errors.New("tracker rejected session token")

	// ErrNotFound indicates the requested entity does not exist upstream.
	ErrNotFound = errors.New("entity not found")

	// ErrServer indicates the tracker returned a 5xx response.
	ErrServer = errors.New("tracker server error")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("tracker request timed out")
)
