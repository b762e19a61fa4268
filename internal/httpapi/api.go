// Package httpapi exposes the radix service over HTTP with JSON bodies,
// together with health and Prometheus endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/govalues/radix/internal/protocol"
	"github.com/govalues/radix/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Defaults for the bounds on /v1 evaluations.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxInFlight = 8
)

// Evaluator evaluates a parsed request.
type Evaluator interface {
	Do(ctx context.Context, req protocol.Request) (string, error)
}

// Options configures the router.
type Options struct {
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Limiter rejects requests arriving faster than it allows. Nil means no limit.
	Limiter *rate.Limiter
	// MaxRequestBytes bounds a request body. Zero means protocol.MaxRequestBytes.
	MaxRequestBytes int
	// Timeout bounds the time to answer a /v1 request. Zero means DefaultTimeout.
	Timeout time.Duration
	// MaxInFlight bounds concurrent /v1 evaluations. Zero means DefaultMaxInFlight.
	MaxInFlight int
	Logger      *logrus.Logger
}

// ConvertRequest is the body of POST /v1/convert.
type ConvertRequest struct {
	Value string `json:"value"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// ArithRequest is the body of POST /v1/arith.
type ArithRequest struct {
	A    string `json:"a"`
	B    string `json:"b"`
	Base int    `json:"base"`
	Op   string `json:"op"`
}

// Response is a successful result.
type Response struct {
	Result string `json:"result"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

type api struct {
	eval     Evaluator
	maxBytes int64
}

// NewRouter returns the HTTP handler serving ev.
func NewRouter(ev Evaluator, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}
	a := &api{eval: ev, maxBytes: int64(opts.MaxRequestBytes)}
	if a.maxBytes <= 0 {
		a.maxBytes = protocol.MaxRequestBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxInFlight <= 0 {
		opts.MaxInFlight = DefaultMaxInFlight
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.Recoverer)
	r.Use(requestLogging(log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(rateLimit(opts.Limiter))
		}
		r.Use(timeout(opts.Timeout))
		r.Use(inFlightLimit(semaphore.NewWeighted(int64(opts.MaxInFlight))))
		r.Post("/convert", a.convert)
		r.Post("/arith", a.arith)
	})
	return r
}

func (a *api) convert(w http.ResponseWriter, r *http.Request) {
	var body ConvertRequest
	if !a.decode(w, r, &body) {
		return
	}
	a.respond(w, r, protocol.NewConvert(body.Value, body.From, body.To))
}

func (a *api) arith(w http.ResponseWriter, r *http.Request) {
	var body ArithRequest
	if !a.decode(w, r, &body) {
		return
	}
	a.respond(w, r, protocol.NewArith(body.A, body.B, body.Base, protocol.Operator(body.Op)))
}

func (a *api) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, a.maxBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Code:    service.CodeMalformed,
				Message: fmt.Sprintf("request exceeds %v bytes", tooLarge.Limit),
			})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    service.CodeMalformed,
			Message: "decoding request body: " + err.Error(),
		})
		return false
	}
	return true
}

func (a *api) respond(w http.ResponseWriter, r *http.Request, req protocol.Request) {
	resp, err := a.eval.Do(r.Context(), req)
	if err != nil {
		d := service.Diagnose(err)
		writeJSON(w, statusOf(d.Code), errorResponse{Code: d.Code, Message: d.Message})
		return
	}
	writeJSON(w, http.StatusOK, Response{Result: resp})
}

func statusOf(code string) int {
	switch code {
	case service.CodeDivisionByZero:
		return http.StatusUnprocessableEntity
	case service.CodeCanceled:
		return http.StatusServiceUnavailable
	case service.CodeInternal:
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
