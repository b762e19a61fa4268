// Package service evaluates radix requests: it converts numbers between bases
// and does exact arithmetic, caching responses and recording metrics.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/govalues/radix"
	"github.com/govalues/radix/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Options configures a Service.
type Options struct {
	// MaxDigits bounds the digits rendered after the radix point.
	// A non-positive value selects radix.DefaultMaxDigits.
	MaxDigits int
	// CacheTTL is how long a response stays cached. Zero disables the cache.
	CacheTTL     time.Duration
	CacheCleanup time.Duration
	// Registerer receives the service metrics. Nil means a private registry.
	Registerer prometheus.Registerer
	Logger     *logrus.Logger
}

// Service evaluates requests. It is safe for concurrent use.
type Service struct {
	maxDigits int
	cache     *resultCache
	metrics   *metrics
	log       *logrus.Logger
}

// New returns a Service configured by opts.
func New(opts Options) (*Service, error) {
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		maxDigits: opts.MaxDigits,
		cache:     newResultCache(opts.CacheTTL, opts.CacheCleanup),
		metrics:   m,
		log:       log,
	}, nil
}

// Convert renders value, written in base src, in base dst.
func (s *Service) Convert(ctx context.Context, value string, src, dst int) (string, error) {
	return s.Do(ctx, protocol.NewConvert(value, src, dst))
}

// Arith evaluates "a op b" with both operands and the result in base.
func (s *Service) Arith(ctx context.Context, a, b string, base int, op protocol.Operator) (string, error) {
	return s.Do(ctx, protocol.NewArith(a, b, base, op))
}

// Do evaluates req, answering from the cache when it can.
// Only successful responses are cached.
func (s *Service) Do(ctx context.Context, req protocol.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := req.String()
	fields := logrus.Fields{"kind": req.Kind, "request": key}
	if id := RequestID(ctx); id != "" {
		fields["request_id"] = id
	}
	log := s.log.WithFields(fields)

	if resp, ok := s.cache.get(string(req.Kind), key); ok {
		s.metrics.cacheHits.Inc()
		s.metrics.requests.WithLabelValues(string(req.Kind), "ok").Inc()
		log.Debug("Answered from cache")
		return resp, nil
	}

	start := time.Now()
	resp, err := s.eval(req)
	elapsed := time.Since(start)
	s.metrics.duration.WithLabelValues(string(req.Kind)).Observe(elapsed.Seconds())
	if err != nil {
		d := Diagnose(err)
		s.metrics.requests.WithLabelValues(string(req.Kind), d.Code).Inc()
		log.WithFields(logrus.Fields{"code": d.Code, "error": err}).Info("Request failed")
		return "", err
	}
	s.metrics.requests.WithLabelValues(string(req.Kind), "ok").Inc()
	s.cache.set(string(req.Kind), key, resp)
	log.WithFields(logrus.Fields{"duration": elapsed, "length": len(resp)}).Debug("Request evaluated")
	return resp, nil
}

// Handle answers a raw request line.
// Failures are reported in the response, which starts with "error: ".
func (s *Service) Handle(ctx context.Context, line string) string {
	req, err := protocol.Parse(line)
	if err != nil {
		d := Diagnose(err)
		s.metrics.requests.WithLabelValues("invalid", d.Code).Inc()
		s.log.WithFields(logrus.Fields{"request_id": RequestID(ctx), "code": d.Code, "error": err}).Info("Rejected request")
		return protocol.FormatError(d.Message)
	}
	resp, err := s.Do(ctx, req)
	if err != nil {
		return protocol.FormatError(Diagnose(err).Message)
	}
	return resp
}

func (s *Service) eval(req protocol.Request) (string, error) {
	switch req.Kind {
	case protocol.KindConvert:
		n, err := radix.ParseNumber(req.Value, req.Source)
		if err != nil {
			return "", err
		}
		return n.TextN(req.Target, s.maxDigits)
	case protocol.KindArith:
		f, err := s.arith(req)
		if err != nil {
			return "", err
		}
		return f.TextN(req.Base, s.maxDigits)
	}
	return "", fmt.Errorf("%w %q", protocol.ErrUnknownType, req.Kind)
}

func (s *Service) arith(req protocol.Request) (radix.Frac, error) {
	a, err := radix.ParseNumber(req.A, req.Base)
	if err != nil {
		return radix.Frac{}, err
	}
	b, err := radix.ParseNumber(req.B, req.Base)
	if err != nil {
		return radix.Frac{}, err
	}
	switch req.Op {
	case protocol.OpAdd:
		return a.Add(b)
	case protocol.OpSub:
		return a.Sub(b)
	case protocol.OpMul:
		return a.Mul(b)
	case protocol.OpQuo:
		return a.Quo(b)
	}
	return radix.Frac{}, fmt.Errorf("operator %q is not one of + - * /: %w", req.Op, protocol.ErrMalformed)
}

type requestIDKey struct{}

// WithRequestID returns a context carrying the request id used in log fields.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
