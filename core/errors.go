package core

import (
	"errors"
)

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

// ErrDuplicateIdentifier is returned when adding a server whose identifier
// is already taken within the guild
var ErrDuplicateIdentifier = errors.New("identifier already exists")

// ErrInvalidHost is returned when a server host is not an IP address with
// an optional port (domain names are rejected by policy)
var ErrInvalidHost = errors.New("host must be an IP address with optional port")

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
