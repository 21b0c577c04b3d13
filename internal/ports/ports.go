// Package ports defines the interfaces for external dependencies in our hexagonal architecture.
// These interfaces are implemented by adapters and replaced by test doubles in tests.
package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	ForecastProvider  ForecastProvider
	ForecastCache     ForecastCache
	Geocoder          Geocoder
	DatetimeExtractor DatetimeExtractor

	// Cache
	CacheMetrics CacheMetrics

	// Infrastructure
	ConfigProvider   ConfigProvider
	Logger           Logger
	MetricsCollector MetricsCollector
	Clock            Clock
}
