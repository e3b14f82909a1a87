package statestore

import "errors"

var (
	// ErrNotFound indicates that a requested entry was not found
	ErrNotFound = errors.New("entry not found")

	// ErrBackendClosed indicates that the backend is closed
	ErrBackendClosed = errors.New("backend is closed")

	// ErrInvalidConfig indicates that the configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedBackend indicates that a backend is not supported
	ErrUnsupportedBackend = errors.New("unsupported backend")
)

// IsNotFound checks if an error indicates that an entry was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
