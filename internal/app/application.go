package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherdialog.app/internal/adapters/api"
	"weatherdialog.app/internal/adapters/infrastructure"
	"weatherdialog.app/internal/adapters/scheduler"
	"weatherdialog.app/internal/config"
	"weatherdialog.app/internal/core/weather"
	"weatherdialog.app/internal/ports"
)

type Application struct {
	config *config.Config
	deps   *DependencyContainer

	// Use Cases
	weatherUseCase *weather.UseCase

	// Adapters
	httpServer  *http.Server
	router      *gin.Engine
	cacheWarmer *scheduler.CacheWarmer

	// Infrastructure
	ports *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	deps, err := NewDependencyContainer(cfg, DependencyOptions{})
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	return NewApplicationWithDependencies(cfg, deps)
}

// NewApplicationWithDependencies creates an application with provided dependencies (for testing)
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		Provider:          a.ports.ForecastProvider,
		Cache:             a.ports.ForecastCache,
		Geocoder:          a.ports.Geocoder,
		DatetimeExtractor: a.ports.DatetimeExtractor,
		Config:            a.ports.ConfigProvider,
		Logger:            a.ports.Logger,
		Metrics:           a.ports.MetricsCollector,
		Clock:             a.ports.Clock,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		Checkers:       a.deps.HealthCheckers(),
		ConfigProvider: a.ports.ConfigProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
		},
		WeatherUseCase: a.weatherUseCase,
		HealthChecker:  systemHealthChecker,
		Observer:       a.deps.Metrics(),
		Gatherer:       a.deps.Registry(),
		Logger:         a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if a.config.Scheduler.PrimeCache && a.config.Weather.EnableCache {
		warmerOptions := scheduler.CacheWarmerOptions{
			Refresher: a.weatherUseCase,
			Recorder:  a.deps.Metrics(),
			Logger:    a.ports.Logger,
			Interval:  time.Duration(a.config.Scheduler.PrimeInterval) * time.Minute,
		}
		if purger, ok := a.deps.CacheProvider().(scheduler.ExpiredEntryPurger); ok {
			warmerOptions.Purger = purger
		}
		a.cacheWarmer, err = scheduler.NewCacheWarmer(warmerOptions)
		if err != nil {
			return fmt.Errorf("create cache warmer: %w", err)
		}
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if a.cacheWarmer != nil {
		if err := a.cacheWarmer.Start(); err != nil {
			return fmt.Errorf("start cache warmer: %w", err)
		}
	}

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if a.cacheWarmer != nil {
		a.cacheWarmer.Stop()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetWeatherUseCase returns the weather use case for testing
func (a *Application) GetWeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}

// GetCacheWarmer returns the cache warmer, nil when priming is disabled
func (a *Application) GetCacheWarmer() *scheduler.CacheWarmer {
	return a.cacheWarmer
}
