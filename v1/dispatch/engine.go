package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Aleph-Alpha/protobench/v1/observability"
	"github.com/Aleph-Alpha/protobench/v1/tracer"
)

// Engine sends encoded messages to target APIs and interprets the replies.
// It is safe for concurrent use; each Dispatch is independent.
type Engine struct {
	cfg        Config
	client     *http.Client
	propagator Propagator
	reporter   Reporter
	logger     Logger
	observer   observability.Observer
}

// New returns an Engine whose client gives up after cfg.Timeout.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:        cfg,
		client:     &http.Client{Timeout: cfg.Timeout},
		propagator: tracer.NewNop(),
	}
}

// WithHTTPClient replaces the client. Its Timeout is kept as is.
func (e *Engine) WithHTTPClient(client *http.Client) *Engine {
	e.client = client
	return e
}

// WithPropagator sets how trace context is written into outgoing requests.
func (e *Engine) WithPropagator(p Propagator) *Engine {
	if p != nil {
		e.propagator = p
	}
	return e
}

// WithReporter attaches a reporter notified after every dispatch.
func (e *Engine) WithReporter(r Reporter) *Engine {
	e.reporter = r
	return e
}

// WithLogger attaches a logger.
func (e *Engine) WithLogger(logger Logger) *Engine {
	e.logger = logger
	return e
}

// WithObserver attaches an observer notified after every dispatch.
func (e *Engine) WithObserver(observer observability.Observer) *Engine {
	e.observer = observer
	return e
}

// Dispatch performs one synchronous request. GET carries no body; POST and
// PUT carry req.Body. Any other method fails with ErrUnsupportedMethod
// before anything is sent.
//
// A response with any status code is a successful dispatch; Response.Success
// tells 2xx apart. Failing to get a response at all, including hitting the
// timeout, yields *DispatchFailed. There are no retries.
func (e *Engine) Dispatch(ctx context.Context, req Request) (resp *Response, err error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	start := time.Now()
	defer func() {
		e.finish(ctx, req, method, start, resp, err)
	}()

	var body io.Reader
	switch method {
	case http.MethodGet:
	case http.MethodPost, http.MethodPut:
		body = bytes.NewReader(req.Body)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, req.Method)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, &DispatchFailed{Method: method, URL: req.URL, Err: err}
	}
	httpReq.Header.Set("User-Agent", e.cfg.UserAgent)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Content-Type", req.Encoding.ContentType())
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", req.Encoding.ContentType()+", */*;q=0.5")
	}
	e.propagator.InjectHTTPHeaders(ctx, httpReq.Header)

	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &DispatchFailed{Method: method, URL: req.URL, Err: err}
	}
	defer httpResp.Body.Close()

	var reader io.Reader = httpResp.Body
	if e.cfg.MaxResponseBytes > 0 {
		reader = io.LimitReader(reader, e.cfg.MaxResponseBytes)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, &DispatchFailed{Method: method, URL: req.URL, Err: err}
	}

	headers := make(map[string]string, len(httpResp.Header))
	for k := range httpResp.Header {
		headers[k] = httpResp.Header.Get(k)
	}
	contentType := httpResp.Header.Get("Content-Type")

	return &Response{
		StatusCode:  httpResp.StatusCode,
		Headers:     headers,
		ContentType: contentType,
		Body:        classify(contentType, raw),
		Size:        len(raw),
		Success:     httpResp.StatusCode >= 200 && httpResp.StatusCode < 300,
		Elapsed:     time.Since(start),
	}, nil
}

func (e *Engine) finish(ctx context.Context, req Request, method string, start time.Time, resp *Response, err error) {
	elapsed := time.Since(start)
	rec := Record{
		URL:       req.URL,
		Method:    method,
		Encoding:  req.Encoding.String(),
		Elapsed:   elapsed,
		Timestamp: start.UTC(),
	}
	meta := map[string]interface{}{
		"method":   method,
		"encoding": req.Encoding.String(),
	}
	if resp != nil {
		rec.StatusCode = resp.StatusCode
		rec.Success = resp.Success
		meta["status_code"] = resp.StatusCode
	}
	if err != nil {
		rec.Error = err.Error()
	}

	if e.observer != nil {
		e.observer.ObserveOperation(observability.OperationContext{
			Component: "dispatch",
			Operation: "dispatch",
			Resource:  req.URL,
			Duration:  elapsed,
			Error:     err,
			Size:      int64(len(req.Body)),
			Metadata:  meta,
		})
	}
	if e.reporter != nil {
		e.reporter.Report(ctx, rec)
	}
	if e.logger == nil {
		return
	}
	fields := map[string]interface{}{
		"url":        req.URL,
		"method":     method,
		"encoding":   req.Encoding.String(),
		"elapsed_ms": elapsed.Milliseconds(),
	}
	if resp != nil {
		fields["status_code"] = resp.StatusCode
	}
	if err != nil {
		e.logger.WarnWithContext(ctx, "dispatch failed", err, fields)
		return
	}
	e.logger.InfoWithContext(ctx, "dispatch completed", nil, fields)
}
