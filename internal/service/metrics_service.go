package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides
// lightweight snapshots for the operator endpoint.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	gatewayDuration  *prometheus.HistogramVec
	gatewayFailures  *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	gatewayCallCount     uint64
	gatewayFailureCount  uint64
	gatewayDurationTotal uint64
	transitionCount      uint64
	transitionFailCount  uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	gatewayDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_call_duration_seconds",
		Help:    "Duration of upstream content gateway calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	gatewayFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_call_failures_total",
		Help: "Total failed upstream content gateway calls",
	}, []string{"kind"})

	transitionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "content_transitions_total",
		Help: "Total workflow transitions by kind, transition and outcome",
	}, []string{"content_kind", "transition", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, gatewayDuration, gatewayFailures, transitionsTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:         registry,
		handler:          handler,
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		gatewayDuration:  gatewayDuration,
		gatewayFailures:  gatewayFailures,
		transitionsTotal: transitionsTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveGatewayCall records one upstream call, failed or not.
func (m *MetricsService) ObserveGatewayCall(method, path string, duration time.Duration, failureKind string) {
	if m == nil {
		return
	}
	m.gatewayDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	atomic.AddUint64(&m.gatewayCallCount, 1)
	atomic.AddUint64(&m.gatewayDurationTotal, uint64(duration.Nanoseconds()))
	if failureKind != "" {
		m.gatewayFailures.WithLabelValues(failureKind).Inc()
		atomic.AddUint64(&m.gatewayFailureCount, 1)
	}
}

// ObserveTransition records one workflow transition attempt.
func (m *MetricsService) ObserveTransition(kind models.ContentKind, transition models.Transition, succeeded bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !succeeded {
		outcome = "failure"
		atomic.AddUint64(&m.transitionFailCount, 1)
	}
	m.transitionsTotal.WithLabelValues(string(kind), string(transition), outcome).Inc()
	atomic.AddUint64(&m.transitionCount, 1)
}

// Snapshot returns aggregated metrics for the operator endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	gwCalls := atomic.LoadUint64(&m.gatewayCallCount)
	gwFailures := atomic.LoadUint64(&m.gatewayFailureCount)
	gwDuration := atomic.LoadUint64(&m.gatewayDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgGatewayMs float64
	if gwCalls > 0 {
		avgGatewayMs = float64(gwDuration) / float64(gwCalls) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		GatewayCallsTotal:        gwCalls,
		GatewayFailuresTotal:     gwFailures,
		AverageGatewayDurationMs: avgGatewayMs,
		TransitionsTotal:         atomic.LoadUint64(&m.transitionCount),
		TransitionFailuresTotal:  atomic.LoadUint64(&m.transitionFailCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
