package infrastructure

import (
	"context"
	"sort"
	"time"

	"weatherdialog.app/internal/ports"
)

// Health states reported by the checkers
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Pinger is implemented by caches with a remote backend
type Pinger interface {
	Ping(ctx context.Context) error
}

type statsReporter interface {
	GetStats() ports.CacheStats
}

// CacheHealthChecker checks the configured response cache
type CacheHealthChecker struct {
	cacheType string
	cache     ports.CacheProvider
}

// NewCacheHealthChecker creates a new cache health checker
func NewCacheHealthChecker(cacheType string, cache ports.CacheProvider) *CacheHealthChecker {
	return &CacheHealthChecker{cacheType: cacheType, cache: cache}
}

// Check pings the backend when it has one
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    StatusHealthy,
		Details:   map[string]interface{}{"type": c.cacheType},
	}

	if c.cache == nil {
		status.Status = StatusUnhealthy
		status.Error = "cache is not configured"
		return status
	}

	if stats, ok := c.cache.(statsReporter); ok {
		s := stats.GetStats()
		status.Details["hits"] = s.Hits
		status.Details["misses"] = s.Misses
		status.Details["hit_ratio"] = s.HitRatio
	}

	if pinger, ok := c.cache.(Pinger); ok {
		if err := pinger.Ping(ctx); err != nil {
			status.Status = StatusUnhealthy
			status.Error = err.Error()
		}
	}
	return status
}

// BreakerReporter is implemented by remote adapters guarded by a circuit breaker
type BreakerReporter interface {
	BreakerState() string
}

// BreakerHealthChecker reports a remote API as degraded while its circuit is
// not closed
type BreakerHealthChecker struct {
	component string
	reporter  BreakerReporter
}

// NewBreakerHealthChecker creates a checker for a breaker guarded component
func NewBreakerHealthChecker(component string, reporter BreakerReporter) *BreakerHealthChecker {
	return &BreakerHealthChecker{component: component, reporter: reporter}
}

func (b *BreakerHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: b.component,
		Status:    StatusHealthy,
		Details:   map[string]interface{}{},
	}
	if b.reporter == nil {
		status.Status = StatusUnhealthy
		status.Error = b.component + " is not configured"
		return status
	}

	state := b.reporter.BreakerState()
	status.Details["circuit"] = state
	if state != "closed" {
		status.Status = StatusDegraded
	}
	return status
}

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       []ports.HealthChecker
	configProvider ports.ConfigProvider
	timeout        time.Duration
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	Checkers       []ports.HealthChecker
	ConfigProvider ports.ConfigProvider
	Timeout        time.Duration
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	return &SystemHealthChecker{
		checkers:       config.Checkers,
		configProvider: config.ConfigProvider,
		timeout:        timeout,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)
	for _, checker := range s.checkers {
		status := checker.Check(ctx)
		results[status.Component] = status
	}

	if s.configProvider != nil {
		device := s.configProvider.GetDeviceConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    StatusHealthy,
			Details: map[string]interface{}{
				"device_city":     device.City,
				"device_timezone": device.Timezone,
				"cache_type":      s.configProvider.GetCacheConfig().Type,
			},
		}
	}
	return results
}

// Overall folds component states into one: unhealthy beats degraded beats healthy
func Overall(results map[string]ports.HealthStatus) string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	overall := StatusHealthy
	for _, name := range names {
		switch results[name].Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}
