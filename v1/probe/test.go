package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Aleph-Alpha/protobench/v1/codec"
	"github.com/Aleph-Alpha/protobench/v1/dispatch"
	"github.com/Aleph-Alpha/protobench/v1/registry"
	"github.com/Aleph-Alpha/protobench/v1/schema"
)

// Test resolves req.MessageType, builds a payload from req.CustomData or
// the generator, encodes it per req.Protocol and dispatches it.
//
// GET requests skip message resolution and send no payload. Test never
// returns an error: every failure becomes a TestResult with Success false,
// a Kind and the underlying Diagnostic.
func (s *Service) Test(ctx context.Context, req TestRequest) *TestResult {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodPost
	}
	protocol := strings.ToLower(strings.TrimSpace(req.Protocol))
	if protocol == "" {
		protocol = s.cfg.DefaultProtocol
	}

	enc, err := codec.ParseEncoding(protocol)
	if err != nil {
		return failure(FailureInvalidRequest, "Unsupported protocol "+req.Protocol, err)
	}
	if strings.TrimSpace(req.APIURL) == "" {
		return failure(FailureInvalidRequest, "API URL is required", ErrInvalidRequest)
	}

	info := &RequestInfo{
		URL:      req.APIURL,
		Method:   method,
		Protocol: protocol,
		Headers:  sentHeaders(req.Headers, enc),
	}
	out := dispatch.Request{
		URL:      req.APIURL,
		Method:   method,
		Encoding: enc,
		Headers:  req.Headers,
	}

	if method != http.MethodGet {
		if strings.TrimSpace(req.MessageType) == "" {
			return failure(FailureInvalidRequest, "API URL and message type are required", ErrInvalidRequest)
		}
		msg, res := s.buildMessage(ctx, req)
		if res != nil {
			return res
		}

		payload, err := s.codec.Encode(msg, enc)
		if err != nil {
			return failure(FailureEncoding, "Failed to encode test data", err)
		}
		text, err := s.codec.Encode(msg, codec.Text)
		if err != nil {
			return failure(FailureEncoding, "Failed to encode test data", err)
		}
		out.Body = payload
		info.TestDataUsed = json.RawMessage(text)
		info.PayloadSize = len(payload)
	}

	resp, err := s.dispatcher.Dispatch(ctx, out)
	if err != nil {
		return dispatchFailure(err, info)
	}

	return &TestResult{
		Success: true,
		Request: info,
		Response: &ResponseInfo{
			StatusCode:     resp.StatusCode,
			Headers:        resp.Headers,
			Data:           resp.Body,
			Success:        resp.Success,
			ResponseTimeMs: resp.Elapsed.Milliseconds(),
		},
	}
}

// buildMessage returns either the message to send or a failure result.
func (s *Service) buildMessage(ctx context.Context, req TestRequest) (*schema.Message, *TestResult) {
	desc, err := s.registry.FindMessage(ctx, req.MessageType)
	switch {
	case registry.IsTypeNotFound(err):
		return nil, failure(FailureTypeNotFound, fmt.Sprintf("Message type %s not found", req.MessageType), err)
	case err != nil:
		s.logError(ctx, "message lookup failed", err, req.MessageType)
		return nil, failure(FailureInternal, "Message lookup failed", err)
	}

	if strings.TrimSpace(req.CustomData) == "" {
		return s.generator.Generate(desc), nil
	}
	msg, err := s.codec.ParseCustom(req.CustomData, desc)
	if err != nil {
		return nil, failure(FailureMalformedData, "Invalid custom data", err)
	}
	return msg, nil
}

func dispatchFailure(err error, info *RequestInfo) *TestResult {
	var res *TestResult
	if errors.Is(err, dispatch.ErrUnsupportedMethod) {
		res = failure(FailureUnsupportedMethod, "Unsupported HTTP method "+info.Method, err)
	} else if df, ok := dispatch.IsDispatchFailed(err); ok && df.Timeout() {
		res = failure(FailureTimeout, "API request timed out", err)
	} else {
		res = failure(FailureDispatch, "API request failed", err)
	}
	res.Request = info
	return res
}

func failure(kind FailureKind, msg string, err error) *TestResult {
	res := &TestResult{Success: false, Error: msg, Kind: kind}
	if err != nil {
		res.Diagnostic = err.Error()
	}
	return res
}

// sentHeaders is what the engine will put on the wire, minus tracing.
func sentHeaders(extra map[string]string, enc codec.Encoding) map[string]string {
	out := make(map[string]string, len(extra)+1)
	for k, v := range extra {
		if http.CanonicalHeaderKey(k) == "Content-Type" {
			continue
		}
		out[k] = v
	}
	out["Content-Type"] = enc.ContentType()
	return out
}

func (s *Service) logError(ctx context.Context, msg string, err error, typeName string) {
	if s.logger != nil {
		s.logger.ErrorWithContext(ctx, msg, err, map[string]interface{}{"message_type": typeName})
	}
}
