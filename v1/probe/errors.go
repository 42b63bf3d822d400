package probe

import "errors"

// ErrInvalidRequest is returned for requests missing required fields.
var ErrInvalidRequest = errors.New("probe: invalid request")
