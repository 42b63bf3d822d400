package registry

import "errors"

var (
	// ErrArtifactMissing is returned when no compiled artifact exists for a schema.
	ErrArtifactMissing = errors.New("registry: artifact missing")

	// ErrArtifactCorrupt is returned when an artifact is not a valid descriptor set.
	ErrArtifactCorrupt = errors.New("registry: artifact corrupt")

	// ErrTypeNotFound is returned when no known schema declares a message type.
	ErrTypeNotFound = errors.New("registry: message type not found")
)

// IsArtifactMissing reports whether err means the schema was never compiled.
func IsArtifactMissing(err error) bool {
	return errors.Is(err, ErrArtifactMissing)
}

// IsArtifactCorrupt reports whether err means the artifact could not be parsed.
func IsArtifactCorrupt(err error) bool {
	return errors.Is(err, ErrArtifactCorrupt)
}

// IsTypeNotFound reports whether err means the message type is unknown.
func IsTypeNotFound(err error) bool {
	return errors.Is(err, ErrTypeNotFound)
}
