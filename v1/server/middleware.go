package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// route registers h under pattern, wrapped with tracing and metrics. The
// metric route label is the pattern's path.
func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	path := pattern
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		path = pattern[i+1:]
	}
	mux.Handle(pattern, s.instrument(path, h))
}

func (s *Server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := s.tracer.ExtractHTTPHeaders(r.Context(), r.Header)
		ctx, span := s.tracer.StartSpan(ctx, r.Method+" "+route)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r.WithContext(ctx))

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		if s.metrics != nil {
			s.metrics.IncrementRequests(route, fmt.Sprintf("%dxx", rec.status/100))
			s.metrics.RecordRequestDuration(start, route)
		}
	})
}
