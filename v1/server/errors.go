package server

import (
	"errors"
	"net/http"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/compiler"
	"github.com/Aleph-Alpha/protobench/v1/probe"
	"github.com/Aleph-Alpha/protobench/v1/registry"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Success    bool              `json:"success"`
	Error      string            `json:"error"`
	Kind       probe.FailureKind `json:"error_kind,omitempty"`
	Diagnostic string            `json:"diagnostic,omitempty"`
}

// requestError marks a malformed or incomplete request.
type requestError struct {
	msg string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(msg string) error {
	return &requestError{msg: msg}
}

// translateError maps a service error to a status code and response body.
func translateError(err error) (int, errorBody) {
	body := errorBody{Error: err.Error()}

	if ce, ok := compiler.IsCompileError(err); ok {
		body.Error = "Compilation failed"
		body.Diagnostic = ce.Diagnostics
		return http.StatusBadRequest, body
	}

	var re *requestError
	switch {
	case errors.As(err, &re), errors.Is(err, artifact.ErrInvalidFilename):
		return http.StatusBadRequest, body
	case registry.IsArtifactMissing(err), registry.IsTypeNotFound(err):
		return http.StatusNotFound, body
	case compiler.IsCompileTimeout(err):
		body.Error = "Schema compilation timed out"
		body.Diagnostic = err.Error()
		return http.StatusGatewayTimeout, body
	case compiler.IsToolchainUnavailable(err):
		body.Error = "Schema compiler unavailable"
		body.Diagnostic = err.Error()
		return http.StatusServiceUnavailable, body
	case registry.IsArtifactCorrupt(err):
		return http.StatusUnprocessableEntity, body
	default:
		return http.StatusInternalServerError, body
	}
}

// failureStatus maps a failed test to a status code.
func failureStatus(kind probe.FailureKind) int {
	switch kind {
	case probe.FailureInvalidRequest, probe.FailureMalformedData, probe.FailureUnsupportedMethod:
		return http.StatusBadRequest
	case probe.FailureTypeNotFound:
		return http.StatusNotFound
	case probe.FailureTimeout:
		return http.StatusGatewayTimeout
	case probe.FailureDispatch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
