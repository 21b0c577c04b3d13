package infrastructure

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdialog.app/internal/mocks"
	"weatherdialog.app/internal/ports"
)

type pingingCache struct {
	*mocks.CacheProvider
	err error
}

func (p *pingingCache) Ping(ctx context.Context) error {
	return p.err
}

type breakerState string

func (b breakerState) BreakerState() string {
	return string(b)
}

type staticChecker ports.HealthStatus

func (s staticChecker) Check(ctx context.Context) ports.HealthStatus {
	return ports.HealthStatus(s)
}

func TestCacheHealthChecker(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		status := NewCacheHealthChecker("redis", &pingingCache{CacheProvider: mocks.NewCacheProvider(t)}).Check(context.Background())

		assert.Equal(t, "cache", status.Component)
		assert.Equal(t, StatusHealthy, status.Status)
		assert.Equal(t, "redis", status.Details["type"])
	})

	t.Run("PingFails", func(t *testing.T) {
		cache := &pingingCache{CacheProvider: mocks.NewCacheProvider(t), err: fmt.Errorf("connection refused")}

		status := NewCacheHealthChecker("redis", cache).Check(context.Background())

		assert.Equal(t, StatusUnhealthy, status.Status)
		assert.Equal(t, "connection refused", status.Error)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		status := NewCacheHealthChecker("memory", nil).Check(context.Background())

		assert.Equal(t, StatusUnhealthy, status.Status)
	})
}

type countingCache struct {
	*mocks.CacheProvider
}

func (countingCache) GetStats() ports.CacheStats {
	return ports.CacheStats{Hits: 3, Misses: 1, HitRatio: 0.75}
}

func TestCacheHealthChecker_ReportsStats(t *testing.T) {
	cache := countingCache{CacheProvider: mocks.NewCacheProvider(t)}

	status := NewCacheHealthChecker("memory", cache).Check(context.Background())

	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, int64(3), status.Details["hits"])
	assert.Equal(t, int64(1), status.Details["misses"])
	assert.Equal(t, 0.75, status.Details["hit_ratio"])
}

func TestBreakerHealthChecker(t *testing.T) {
	tests := []struct {
		state    string
		expected string
	}{
		{"closed", StatusHealthy},
		{"half-open", StatusDegraded},
		{"open", StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			status := NewBreakerHealthChecker("forecast_provider", breakerState(tt.state)).Check(context.Background())

			assert.Equal(t, "forecast_provider", status.Component)
			assert.Equal(t, tt.expected, status.Status)
			assert.Equal(t, tt.state, status.Details["circuit"])
		})
	}

	status := NewBreakerHealthChecker("geolocation", nil).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, status.Status)
}

func TestSystemHealthChecker_CheckAll(t *testing.T) {
	config := &mocks.ConfigProvider{
		Device: ports.DeviceConfig{City: "Chicago", Timezone: "America/Chicago"},
		Cache:  ports.CacheConfig{Type: "memory"},
	}
	checker := NewSystemHealthChecker(SystemHealthCheckerConfig{
		Checkers: []ports.HealthChecker{
			staticChecker{Component: "cache", Status: StatusHealthy},
			staticChecker{Component: "forecast_provider", Status: StatusDegraded},
		},
		ConfigProvider: config,
	})

	results := checker.CheckAll(context.Background())

	require.Len(t, results, 3)
	assert.Equal(t, StatusDegraded, results["forecast_provider"].Status)
	assert.Equal(t, "Chicago", results["config"].Details["device_city"])
	assert.Equal(t, StatusDegraded, Overall(results))
}

func TestOverall(t *testing.T) {
	assert.Equal(t, StatusHealthy, Overall(map[string]ports.HealthStatus{}))
	assert.Equal(t, StatusUnhealthy, Overall(map[string]ports.HealthStatus{
		"a": {Status: StatusDegraded},
		"b": {Status: StatusUnhealthy},
	}))
}
