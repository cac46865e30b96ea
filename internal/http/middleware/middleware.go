// Package middleware holds the cross-cutting HTTP wrappers applied to
// every route: request ids, access logging, metrics, and panic recovery.
//
// Each wrapper has the standard func(http.Handler) http.Handler shape so
// main can chain them around the router:
//
//	handler := middleware.RequestID(middleware.Logger(log,
//	    middleware.Metrics(middleware.Recover(log, router))))
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/campus-labs/student-registry/internal/metrics"
	"github.com/campus-labs/student-registry/internal/utils/response"
)

// RequestIDHeader carries the per-request id assigned by RequestID.
const RequestIDHeader = "X-Request-Id"

// statusWriter records the status code written by the handler so the
// logging and metrics wrappers can report it. A handler that never
// calls WriteHeader implicitly responds 200.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// RequestID tags every request with a uuid, echoed in the response
// headers so clients can quote it when reporting problems. An id
// supplied by the caller is kept (useful behind a gateway that assigns
// its own).
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// Logger writes one structured access-log line per request.
func Logger(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		log.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", sw.status),
			slog.String("request_id", sw.Header().Get(RequestIDHeader)),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// Metrics counts every request by method and status code.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		metrics.RequestsTotal.WithLabelValues(
			r.Method, strconv.Itoa(sw.status)).Inc()
	})
}

// Recover converts a handler panic into a generic 500 response. The
// panic value is logged, never sent to the client.
func Recover(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("handler panicked",
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
				)
				response.WriteJSON(w, http.StatusInternalServerError,
					response.Response{
						Status: response.StatusError,
						Error:  "internal server error",
					})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
