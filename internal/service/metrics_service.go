package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer
// and the solving pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	solveDuration   *prometheus.HistogramVec
	solveTotal      *prometheus.CounterVec
	fallbackTotal   prometheus.Counter

	requestCount         uint64
	requestDurationTotal uint64
	solveCount           uint64
	solveDurationTotal   uint64
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

	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_solve_duration_seconds",
		Help:    "End-to-end duration of schedule solves",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60},
	}, []string{"solver", "status"})

	solveTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_solves_total",
		Help: "Total number of schedule solves",
	}, []string{"solver", "status"})

	fallbackTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_fallbacks_total",
		Help: "Total number of solves that ended on the fallback heuristic",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, solveDuration, solveTotal, fallbackTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solveDuration:   solveDuration,
		solveTotal:      solveTotal,
		fallbackTotal:   fallbackTotal,
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

// ObserveSolve records one completed solve, labelled by the solver that
// produced the final answer and by its terminal status.
func (m *MetricsService) ObserveSolve(solver, status string, runtimeSeconds float64) {
	if m == nil {
		return
	}
	m.solveDuration.WithLabelValues(solver, status).Observe(runtimeSeconds)
	m.solveTotal.WithLabelValues(solver, status).Inc()
	if solver == "heuristic" {
		m.fallbackTotal.Inc()
	}
	atomic.AddUint64(&m.solveCount, 1)
	atomic.AddUint64(&m.solveDurationTotal, uint64(runtimeSeconds*float64(time.Second)))
}

// SolveStats is a lightweight aggregate for health/diagnostics payloads.
type SolveStats struct {
	RequestsTotal         uint64  `json:"requests_total"`
	AverageRequestMs      float64 `json:"average_request_ms"`
	SolvesTotal           uint64  `json:"solves_total"`
	AverageSolveSeconds   float64 `json:"average_solve_seconds"`
	GoroutinesActiveCount int     `json:"goroutines_active"`
}

// Snapshot returns aggregated metrics suitable for diagnostics endpoints.
func (m *MetricsService) Snapshot() SolveStats {
	if m == nil {
		return SolveStats{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	solves := atomic.LoadUint64(&m.solveCount)
	solveDuration := atomic.LoadUint64(&m.solveDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}
	var avgSolveSeconds float64
	if solves > 0 {
		avgSolveSeconds = float64(solveDuration) / float64(solves) / float64(time.Second)
	}

	return SolveStats{
		RequestsTotal:         requests,
		AverageRequestMs:      avgRequestMs,
		SolvesTotal:           solves,
		AverageSolveSeconds:   avgSolveSeconds,
		GoroutinesActiveCount: runtime.NumGoroutine(),
	}
}
