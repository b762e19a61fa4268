package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/radix/internal/service"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request id in responses.
const RequestIDHeader = "X-Request-ID"

// statusWriter captures the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// requestLogging tags each request with an id and logs its outcome.
func requestLogging(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)
			r = r.WithContext(service.WithRequestID(r.Context(), id))

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			entry := log.WithFields(logrus.Fields{
				"request_id": id,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     sw.status,
				"duration":   time.Since(start),
			})
			if sw.status >= http.StatusInternalServerError {
				entry.Error("Request failed with server error")
				return
			}
			entry.Info("Request completed")
		})
	}
}

// rateLimit rejects requests arriving faster than limiter allows.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, errorResponse{
					Code:    "rate_limited",
					Message: "rate limit exceeded",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// inFlightLimit rejects a request while sem has no free slot.
// The slot is held until the evaluation returns, even after a timeout.
func inFlightLimit(sem *semaphore.Weighted) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sem.TryAcquire(1) {
				writeJSON(w, http.StatusServiceUnavailable, errorResponse{
					Code:    "busy",
					Message: "too many requests in flight",
				})
				return
			}
			defer sem.Release(1)
			next.ServeHTTP(w, r)
		})
	}
}

// timeout answers 503 when next does not respond within d.
func timeout(d time.Duration) func(http.Handler) http.Handler {
	body, _ := json.Marshal(errorResponse{
		Code:    "timeout",
		Message: fmt.Sprintf("request took longer than %v", d),
	})
	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, d, string(body)+"\n")
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			th.ServeHTTP(w, r)
		})
	}
}
