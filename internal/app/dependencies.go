package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"weatherdialog.app/internal/adapters/external"
	"weatherdialog.app/internal/adapters/infrastructure"
	"weatherdialog.app/internal/config"
	"weatherdialog.app/internal/ports"
)

// DependencyContainer builds the adapters behind every port
type DependencyContainer struct {
	config *config.Config
	ports  *ports.ApplicationPorts

	cacheProvider ports.CacheProvider
	forecastAPI   *external.OpenWeatherMapProviderAdapter
	geolocation   *external.GeolocationProviderAdapter
	registry      *prometheus.Registry
	metrics       *infrastructure.PrometheusMetricsCollector
	closers       []io.Closer
}

// DependencyOptions overrides parts of the container, mainly for tests
type DependencyOptions struct {
	// LogOutput receives the structured log, os.Stdout when nil
	LogOutput io.Writer
	// HTTPClient replaces the client of the remote adapters
	HTTPClient external.HTTPClient
	Clock      ports.Clock
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	container := &DependencyContainer{config: cfg}

	if err := container.initializePorts(opts); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}
	return container, nil
}

func (c *DependencyContainer) initializeLogger(opts DependencyOptions) ports.Logger {
	output := opts.LogOutput
	if output == nil {
		output = os.Stdout
	}
	var logger ports.Logger = infrastructure.NewSlogLoggerAdapter(output, c.config.LogLevel)

	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath, opts.Clock)
		if err != nil {
			logger.Warn("Failed to create file logger, falling back to slog", ports.F("error", err))
			return logger
		}
		c.closers = append(c.closers, fileLogger)
		logger = infrastructure.MultiLogger{logger, fileLogger}
		logger.Info("File logging enabled", ports.F("path", c.config.Weather.LogFilePath))
	}
	return logger
}

func (c *DependencyContainer) initializePorts(opts DependencyOptions) error {
	slog.Info("Initializing ports...")

	clock := opts.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	logger := c.initializeLogger(opts)
	configProvider := infrastructure.NewConfigProviderAdapter(c.config)

	cacheFactory := external.NewCacheProviderFactory(clock)
	cacheProvider, err := cacheFactory.CreateCacheProvider(configProvider.GetCacheConfig())
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	c.cacheProvider = cacheProvider
	if closer, ok := cacheProvider.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	logger.Info("Cache provider initialized", ports.F("type", c.config.Cache.Type.String()))

	timeout := c.config.Weather.Timeout()
	c.forecastAPI = external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
		APIKey:  c.config.Weather.APIKey,
		BaseURL: c.config.Weather.BaseURL,
		Timeout: timeout,
		Client:  opts.HTTPClient,
		Logger:  logger,
	})
	c.geolocation = external.NewGeolocationProviderAdapter(external.GeolocationProviderParams{
		BaseURL: c.config.Weather.GeolocationURL,
		Timeout: timeout,
		Client:  opts.HTTPClient,
		Logger:  logger,
	})

	var provider ports.ForecastProvider = external.NewRateLimitedForecastProvider(
		c.forecastAPI, c.config.Weather.RateLimitRPS, c.config.Weather.RateLimitBurst)
	var geocoder ports.Geocoder = c.geolocation
	if c.config.Weather.EnableLogging {
		provider = external.NewForecastProviderLoggingDecorator(provider, logger)
		geocoder = external.NewGeocoderLoggingDecorator(geocoder, logger)
		logger.Info("Forecast provider logging enabled")
	}

	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.metrics = infrastructure.NewPrometheusMetricsCollector(c.registry)

	var cacheMetrics ports.CacheMetrics
	if m, ok := cacheProvider.(ports.CacheMetrics); ok {
		cacheMetrics = m
	}

	c.ports = &ports.ApplicationPorts{
		ForecastProvider:  provider,
		ForecastCache:     external.NewForecastCacheAdapter(cacheProvider),
		Geocoder:          geocoder,
		DatetimeExtractor: external.NewWhenDatetimeExtractor(),

		CacheMetrics: cacheMetrics,

		ConfigProvider:   configProvider,
		Logger:           logger,
		MetricsCollector: c.metrics,
		Clock:            clock,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// HealthCheckers returns a checker for every remote dependency
func (c *DependencyContainer) HealthCheckers() []ports.HealthChecker {
	return []ports.HealthChecker{
		infrastructure.NewCacheHealthChecker(c.config.Cache.Type.String(), c.cacheProvider),
		infrastructure.NewBreakerHealthChecker("forecast_provider", c.forecastAPI),
		infrastructure.NewBreakerHealthChecker("geolocation", c.geolocation),
	}
}

// Registry is the prometheus registry served on /metrics
func (c *DependencyContainer) Registry() *prometheus.Registry {
	return c.registry
}

// Metrics returns the collector behind the MetricsCollector port
func (c *DependencyContainer) Metrics() *infrastructure.PrometheusMetricsCollector {
	return c.metrics
}

// CacheProvider returns the raw cache behind the forecast cache
func (c *DependencyContainer) CacheProvider() ports.CacheProvider {
	return c.cacheProvider
}

// Cleanup closes the cache backend and the log file
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}
