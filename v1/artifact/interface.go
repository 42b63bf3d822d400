package artifact

import "context"

// Store keeps compiled artifacts keyed by object name (see ArtifactName).
//
// Put replaces any previous object of the same name atomically: readers see
// either the old bytes or the new ones, never a mix.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error

	// List returns every object name, sorted.
	List(ctx context.Context) ([]string, error)
}

// Logger is the subset of logger.Logger the stores use.
//
//go:generate mockgen -source=interface.go -destination=mock_logger.go -package=artifact
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}
