package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/govalues/radix/internal/logging"
	"github.com/govalues/radix/internal/protocol"
	"github.com/govalues/radix/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc, err := service.New(service.Options{Registerer: reg, Logger: logging.Discard()})
	require.NoError(t, err)
	opts.Gatherer = reg
	opts.Logger = logging.Discard()
	return NewRouter(svc, opts)
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestConvert(t *testing.T) {
	h := newTestRouter(t, Options{})
	tests := []struct {
		body       string
		wantStatus int
		wantField  string
		want       string
	}{
		{`{"value":"0.(3)","from":10,"to":3}`, http.StatusOK, "result", "0.1"},
		{`{"value":"FF","from":16,"to":10}`, http.StatusOK, "result", "255"},
		{`{"value":"0.(9)","from":10,"to":10}`, http.StatusOK, "result", "1.0"},
		{`{"value":"2","from":2,"to":10}`, http.StatusBadRequest, "code", service.CodeInvalidInput},
		{`{"value":"1","from":10,"to":1}`, http.StatusBadRequest, "code", service.CodeOutOfRange},
		{`{"value":1}`, http.StatusBadRequest, "code", service.CodeMalformed},
		{`{"value":"1","from":10,"to":2,"extra":true}`, http.StatusBadRequest, "code", service.CodeMalformed},
	}
	for _, tt := range tests {
		rec := post(t, h, "/v1/convert", tt.body)
		assert.Equal(t, tt.wantStatus, rec.Code, "body %v", tt.body)
		var got map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), "body %v", tt.body)
		assert.Equal(t, tt.want, got[tt.wantField], "body %v", tt.body)
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	}
}

func TestArith(t *testing.T) {
	h := newTestRouter(t, Options{})
	tests := []struct {
		body       string
		wantStatus int
		wantField  string
		want       string
	}{
		{`{"a":"1","b":"3","base":10,"op":"/"}`, http.StatusOK, "result", "0.(3)"},
		{`{"a":"0.(3)","b":"0.(6)","base":10,"op":"+"}`, http.StatusOK, "result", "1"},
		{`{"a":"1.1","b":"1.1","base":2,"op":"*"}`, http.StatusOK, "result", "10.01"},
		{`{"a":"1","b":"0","base":10,"op":"/"}`, http.StatusUnprocessableEntity, "code", service.CodeDivisionByZero},
		{`{"a":"1","b":"2","base":10,"op":"%"}`, http.StatusBadRequest, "code", service.CodeMalformed},
	}
	for _, tt := range tests {
		rec := post(t, h, "/v1/arith", tt.body)
		assert.Equal(t, tt.wantStatus, rec.Code, "body %v", tt.body)
		var got map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), "body %v", tt.body)
		assert.Equal(t, tt.want, got[tt.wantField], "body %v", tt.body)
	}
}

func TestBodyLimit(t *testing.T) {
	h := newTestRouter(t, Options{MaxRequestBytes: 32})
	body := `{"value":"` + strings.Repeat("1", 64) + `","from":10,"to":2}`
	rec := post(t, h, "/v1/convert", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "request exceeds 32 bytes")
}

// blockingEvaluator answers "1" once release is closed.
type blockingEvaluator struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingEvaluator() *blockingEvaluator {
	return &blockingEvaluator{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (e *blockingEvaluator) Do(_ context.Context, _ protocol.Request) (string, error) {
	e.started <- struct{}{}
	<-e.release
	return "1", nil
}

func TestTimeout(t *testing.T) {
	ev := newBlockingEvaluator()
	defer close(ev.release)
	h := NewRouter(ev, Options{Timeout: 20 * time.Millisecond, Logger: logging.Discard()})

	rec := post(t, h, "/v1/convert", `{"value":"1","from":10,"to":2}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "timeout", got["code"])
}

func TestMaxInFlight(t *testing.T) {
	ev := newBlockingEvaluator()
	h := NewRouter(ev, Options{MaxInFlight: 1, Logger: logging.Discard()})
	body := `{"a":"1","b":"3","base":10,"op":"/"}`

	first := make(chan *httptest.ResponseRecorder)
	go func() {
		first <- post(t, h, "/v1/arith", body)
	}()
	<-ev.started

	rec := post(t, h, "/v1/arith", body)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "busy")

	close(ev.release)
	rec = <-first
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"result":"1"`)

	// The slot is free again.
	rec = post(t, h, "/v1/arith", body)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	h := newTestRouter(t, Options{Limiter: rate.NewLimiter(0, 1)})
	body := `{"value":"2","from":10,"to":2}`
	assert.Equal(t, http.StatusOK, post(t, h, "/v1/convert", body).Code)
	rec := post(t, h, "/v1/convert", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate_limited")

	// Health checks are not limited.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	hrec := httptest.NewRecorder()
	h.ServeHTTP(hrec, req)
	assert.Equal(t, http.StatusOK, hrec.Code)
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t, Options{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	h := newTestRouter(t, Options{})
	post(t, h, "/v1/arith", `{"a":"1","b":"3","base":10,"op":"/"}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `radix_requests_total{kind="arif",outcome="ok"} 1`)
}

func TestCORS(t *testing.T) {
	h := newTestRouter(t, Options{})
	req := httptest.NewRequest(http.MethodOptions, "/v1/convert", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
