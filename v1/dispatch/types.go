package dispatch

import (
	"time"

	"github.com/Aleph-Alpha/protobench/v1/codec"
)

// Request is one call to a target API.
type Request struct {
	URL    string
	Method string

	// Encoding selects the Content-Type and Accept headers.
	Encoding codec.Encoding

	// Body is sent for POST and PUT and ignored for GET.
	Body []byte

	// Headers are added to the request. Content-Type is always set by the
	// engine and cannot be overridden here.
	Headers map[string]string
}

// Response is the interpreted outcome of a call that reached the target.
type Response struct {
	StatusCode int

	// Headers holds the first value of each response header.
	Headers map[string]string

	ContentType string

	// Body is the parsed JSON value for JSON responses, a
	// "<Binary protobuf data: N bytes>" summary for protobuf responses, and
	// the raw text otherwise.
	Body interface{}

	// Size is the number of body bytes received.
	Size int

	// Success is true for 2xx status codes.
	Success bool

	Elapsed time.Duration
}

// Record summarizes one dispatch for reporting.
type Record struct {
	URL        string        `json:"url"`
	Method     string        `json:"method"`
	Encoding   string        `json:"encoding"`
	StatusCode int           `json:"status_code,omitempty"`
	Success    bool          `json:"success"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	Error      string        `json:"error,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}
