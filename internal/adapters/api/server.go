// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherdialog.app/internal/core/intent"
	"weatherdialog.app/internal/core/weather"
	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router         *gin.Engine
	config         ServerConfig
	weatherUseCase WeatherUseCase
	healthChecker  ports.SystemHealthChecker
	observer       RequestObserver
	gatherer       prometheus.Gatherer
	logger         ports.Logger
}

// WeatherUseCase is the use case the intent endpoint depends on
type WeatherUseCase interface {
	Handle(ctx context.Context, name string, req intent.Request) (*weather.Response, error)
}

// RequestObserver records the latency of served requests
type RequestObserver interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config         ServerConfig
	WeatherUseCase WeatherUseCase
	HealthChecker  ports.SystemHealthChecker
	Observer       RequestObserver
	Gatherer       prometheus.Gatherer
	Logger         ports.Logger
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := RegisterValidators(v); err != nil {
			return nil, errors.NewConfigurationError("failed to register request validators", err)
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &HTTPServerAdapter{
		router:         router,
		config:         opts.Config,
		weatherUseCase: opts.WeatherUseCase,
		healthChecker:  opts.HealthChecker,
		observer:       opts.Observer,
		gatherer:       opts.Gatherer,
		logger:         opts.Logger,
	}

	router.Use(requestID(), server.observeRequests())
	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/intents", s.listIntents)
		api.GET("/intents/:intent", s.handleIntent)
		api.GET("/health", s.getHealth)
	}

	if s.gatherer != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
