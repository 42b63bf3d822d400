package probe

import "encoding/json"

// TestRequest asks the probe to exercise one endpoint.
type TestRequest struct {
	APIURL      string `json:"api_url"`
	MessageType string `json:"message_type"`

	// Protocol is "rest"/"json"/"text" or "protobuf"/"binary".
	Protocol string `json:"protocol"`

	// Method is GET, POST or PUT; POST when empty.
	Method string `json:"method"`

	// CustomData is protobuf JSON used instead of generated data.
	CustomData string `json:"custom_data"`

	Headers map[string]string `json:"headers"`
}

// FailureKind classifies why a test did not reach the target or could not
// build its payload.
type FailureKind string

const (
	FailureInvalidRequest    FailureKind = "invalid_request"
	FailureTypeNotFound      FailureKind = "type_not_found"
	FailureMalformedData     FailureKind = "malformed_custom_data"
	FailureEncoding          FailureKind = "encoding_failed"
	FailureUnsupportedMethod FailureKind = "unsupported_method"
	FailureTimeout           FailureKind = "timeout"
	FailureDispatch          FailureKind = "dispatch_failed"
	FailureInternal          FailureKind = "internal"
)

// TestResult is the outcome of one test. Success means a response was
// received, whatever its status; Response.Success tells whether it was 2xx.
type TestResult struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Kind    FailureKind `json:"error_kind,omitempty"`

	// Diagnostic is the underlying parser, lookup or transport message.
	Diagnostic string `json:"diagnostic,omitempty"`

	Request  *RequestInfo  `json:"request,omitempty"`
	Response *ResponseInfo `json:"response,omitempty"`
}

// RequestInfo echoes what was sent.
type RequestInfo struct {
	URL      string            `json:"url"`
	Method   string            `json:"method"`
	Protocol string            `json:"protocol,omitempty"`
	Headers  map[string]string `json:"headers"`

	// TestDataUsed is the payload rendered as protobuf JSON.
	TestDataUsed json.RawMessage `json:"test_data_used,omitempty"`

	PayloadSize int `json:"payload_size"`
}

// ResponseInfo describes what came back.
type ResponseInfo struct {
	StatusCode     int               `json:"status_code"`
	Headers        map[string]string `json:"headers"`
	Data           interface{}       `json:"data"`
	Success        bool              `json:"success"`
	ResponseTimeMs int64             `json:"response_time_ms"`
}

// UploadResult describes an uploaded and compiled schema.
type UploadResult struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	Filename     string   `json:"filename"`
	MessageTypes []string `json:"available_message_types,omitempty"`

	// Warning is set when the schema compiled but could not be analysed.
	Warning string `json:"warning,omitempty"`

	// Diagnostics carries protoc warnings on success.
	Diagnostics string `json:"diagnostics,omitempty"`
}

// Sample is a generated payload for one message type.
type Sample struct {
	MessageType string          `json:"message_type"`
	TestData    json.RawMessage `json:"test_data"`
}
