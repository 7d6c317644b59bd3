package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshotAggregates(t *testing.T) {
	m := NewMetricsService()

	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/schedules/generate", 200, 20*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/schedules/generate", 200, 40*time.Millisecond)
	m.ObserveSolve("cp_sat", "optimal", 0.5)
	m.ObserveSolve("heuristic", "fallback", 1.5)

	stats := m.Snapshot()

	assert.Equal(t, uint64(2), stats.RequestsTotal)
	assert.InDelta(t, 30.0, stats.AverageRequestMs, 0.001)
	assert.Equal(t, uint64(2), stats.SolvesTotal)
	assert.InDelta(t, 1.0, stats.AverageSolveSeconds, 0.001)
	assert.Greater(t, stats.GoroutinesActiveCount, 0)
}

func TestMetricsSnapshotNilSafe(t *testing.T) {
	var m *MetricsService

	assert.Equal(t, SolveStats{}, m.Snapshot())
}
