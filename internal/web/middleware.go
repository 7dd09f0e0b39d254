package web

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/tally/internal/errors"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

// responseWriter captures the HTTP status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// instrument assigns a request id, attaches a request-scoped logger to the
// context, recovers panics as INTERNAL errors, then logs and records metrics.
// The matched route comes from r.Pattern, which the mux sets on this request.
func (h *Handlers) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" || len(reqID) > maxRequestIDLen {
			reqID = ulid.Make().String()
		}
		w.Header().Set(RequestIDHeader, reqID)

		reqLog := h.log.With().Str("request_id", reqID).Logger()
		r = r.WithContext(reqLog.WithContext(r.Context()))
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		h.metrics.HTTPRequestsInFlight.Inc()
		defer func() {
			h.metrics.HTTPRequestsInFlight.Dec()

			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				reqLog.Error().Interface("panic", p).Bytes("stack", debug.Stack()).Msg("handler panic")
				if !rw.wroteHeader {
					renderError(rw, r, errors.NewInternal(fmt.Errorf("panic: %v", p)))
				}
			}

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			duration := time.Since(start)
			h.metrics.RecordHTTPRequest(r.Method, route, rw.statusCode, duration)

			reqLog.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Int("status", rw.statusCode).
				Dur("duration", duration).
				Str("remote", r.RemoteAddr).
				Msg("request")
		}()

		next.ServeHTTP(rw, r)
	})
}
