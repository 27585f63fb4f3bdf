// Package errs defines the error taxonomy for a key rotation run.
//
// Each category is a sentinel matched with errors.Is; call sites attach
// detail by wrapping. Only ErrConfiguration aborts a run — the remaining
// categories are isolated per user or per key and only counted.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration covers missing or invalid process configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrDirectoryLookup covers failures listing keys or tags for one user.
	ErrDirectoryLookup = errors.New("directory lookup failed")

	// ErrNotification covers failures sending a rotation notice.
	ErrNotification = errors.New("notification failed")

	// ErrDeactivation covers failures updating a key's status.
	ErrDeactivation = errors.New("deactivation failed")
)

// Wrap attaches ext as detail under the base category.
func Wrap(base, ext error) error {
	if ext == nil {
		return base
	}

	return fmt.Errorf("%w: %w", base, ext)
}

// Wrapf attaches a formatted message as detail under the base category.
func Wrapf(base error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}
