package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrUnsupportedMethod is returned for methods other than GET, POST and PUT.
var ErrUnsupportedMethod = errors.New("dispatch: unsupported method")

// DispatchFailed reports a request that produced no HTTP response: the
// target was unreachable, the connection broke, or the timeout elapsed.
type DispatchFailed struct {
	Method string
	URL    string
	Err    error
}

func (e *DispatchFailed) Error() string {
	return fmt.Sprintf("dispatch: %s %s failed: %v", e.Method, e.URL, e.Err)
}

func (e *DispatchFailed) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was the dispatch timeout elapsing.
func (e *DispatchFailed) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// IsDispatchFailed reports whether err is a *DispatchFailed and returns it.
func IsDispatchFailed(err error) (*DispatchFailed, bool) {
	var df *DispatchFailed
	if errors.As(err, &df) {
		return df, true
	}
	return nil, false
}
