package artifact

import "errors"

var (
	// ErrNotFound is returned when no object exists under the requested name.
	ErrNotFound = errors.New("artifact: not found")

	// ErrInvalidFilename is returned for names that are empty, not .proto
	// sources, or reduce to nothing once sanitized.
	ErrInvalidFilename = errors.New("artifact: invalid filename")

	// ErrUnknownBackend is returned when Config.Backend names no known store.
	ErrUnknownBackend = errors.New("artifact: unknown backend")
)

// IsNotFound reports whether err means the object does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
