package probe

import "context"

// Logger is the subset of logger.Logger the probe uses.
//
//go:generate mockgen -source=logger.go -destination=mock_logger.go -package=probe
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
