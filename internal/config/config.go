package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherdialog.app/pkg/errors"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 1440
	maxPrimeInterval   = 1440
	maxPortNumber      = 65535
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Weather   WeatherConfig   `split_words:"true"`
	Device    DeviceConfig    `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	LogLevel  string          `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// WeatherConfig configures the forecast proxy and the response cache
type WeatherConfig struct {
	APIKey          string  `envconfig:"WEATHER_API_KEY"`
	BaseURL         string  `envconfig:"WEATHER_API_BASE_URL" default:"http://localhost:8000/v1/owm"`
	GeolocationURL  string  `envconfig:"WEATHER_GEOLOCATION_URL" default:"http://localhost:8000/v1"`
	EnableCache     bool    `envconfig:"WEATHER_ENABLE_CACHE" default:"true"`
	CacheTTLMinutes int     `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"15"`
	EnableLogging   bool    `envconfig:"WEATHER_ENABLE_LOGGING" default:"false"`
	LogFilePath     string  `envconfig:"WEATHER_LOG_FILE_PATH" default:"logs/forecast_provider.log"`
	RateLimitRPS    float64 `envconfig:"WEATHER_RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst  int     `envconfig:"WEATHER_RATE_LIMIT_BURST" default:"10"`
	TimeoutSeconds  int     `envconfig:"WEATHER_TIMEOUT_SECONDS" default:"10"`
}

// CacheTTL returns the forecast freshness window
func (w WeatherConfig) CacheTTL() time.Duration {
	return time.Duration(w.CacheTTLMinutes) * time.Minute
}

// Timeout returns the per request timeout of the remote calls
func (w WeatherConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// DeviceConfig is the home location and the unit preferences of the device
type DeviceConfig struct {
	City            string  `envconfig:"DEVICE_CITY" default:"Lawrence"`
	Region          string  `envconfig:"DEVICE_REGION" default:"Kansas"`
	Country         string  `envconfig:"DEVICE_COUNTRY" default:"United States"`
	Latitude        float64 `envconfig:"DEVICE_LATITUDE" default:"38.971669"`
	Longitude       float64 `envconfig:"DEVICE_LONGITUDE" default:"-95.23525"`
	Timezone        string  `envconfig:"DEVICE_TIMEZONE" default:"America/Chicago"`
	SystemUnit      string  `envconfig:"DEVICE_SYSTEM_UNIT" default:"imperial"`
	TemperatureUnit string  `envconfig:"DEVICE_TEMPERATURE_UNIT" default:"default"`
	Language        string  `envconfig:"DEVICE_LANGUAGE" default:"en-us"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
	CacheTypeDatabase
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	case CacheTypeDatabase:
		return "database"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis || c == CacheTypeDatabase
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	case "database":
		return CacheTypeDatabase
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type     CacheType      `envconfig:"CACHE_TYPE" default:"memory"`
	Redis    RedisConfig    `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// DatabaseConfig configures the gorm backed cache
type DatabaseConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"postgres"`
	DSN    string `envconfig:"DB_DSN" default:"host=localhost port=5432 user=postgres password=postgres dbname=weatherdialog sslmode=disable"`
}

// SchedulerConfig controls priming of the device forecast
type SchedulerConfig struct {
	PrimeCache    bool `envconfig:"SCHEDULER_PRIME_CACHE" default:"true"`
	PrimeInterval int  `envconfig:"SCHEDULER_PRIME_INTERVAL" default:"10"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Device.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func validateURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}

func (w *WeatherConfig) Validate() error {
	if err := validateURL("WEATHER_API_BASE_URL", w.BaseURL); err != nil {
		return err
	}
	if err := validateURL("WEATHER_GEOLOCATION_URL", w.GeolocationURL); err != nil {
		return err
	}
	if w.CacheTTLMinutes < 1 || w.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	if w.EnableLogging && w.LogFilePath == "" {
		return errors.NewConfigurationError("WEATHER_LOG_FILE_PATH cannot be empty when logging is enabled", nil)
	}
	if w.RateLimitRPS <= 0 {
		return errors.NewConfigurationError("WEATHER_RATE_LIMIT_RPS must be positive", nil)
	}
	if w.RateLimitBurst < 1 {
		return errors.NewConfigurationError("WEATHER_RATE_LIMIT_BURST must be at least 1", nil)
	}
	if w.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("WEATHER_TIMEOUT_SECONDS must be at least 1 second", nil)
	}
	return nil
}

func (d *DeviceConfig) Validate() error {
	if d.Latitude < -90 || d.Latitude > 90 {
		return errors.NewConfigurationError("DEVICE_LATITUDE must be between -90 and 90", nil)
	}
	if d.Longitude < -180 || d.Longitude > 180 {
		return errors.NewConfigurationError("DEVICE_LONGITUDE must be between -180 and 180", nil)
	}
	if _, err := time.LoadLocation(d.Timezone); err != nil || d.Timezone == "" {
		return errors.NewConfigurationError(fmt.Sprintf("DEVICE_TIMEZONE %q is not a valid IANA zone", d.Timezone), err)
	}
	switch d.SystemUnit {
	case "metric", "imperial":
	default:
		return errors.NewConfigurationError("DEVICE_SYSTEM_UNIT must be one of: metric, imperial", nil)
	}
	switch d.TemperatureUnit {
	case "default", "celsius", "fahrenheit":
	default:
		return errors.NewConfigurationError("DEVICE_TEMPERATURE_UNIT must be one of: default, celsius, fahrenheit", nil)
	}
	if d.Language == "" {
		return errors.NewConfigurationError("DEVICE_LANGUAGE cannot be empty", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis, database", nil)
	}

	switch c.Type {
	case CacheTypeRedis:
		return c.Redis.Validate()
	case CacheTypeDatabase:
		return c.Database.Validate()
	}
	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case "postgres", "sqlite":
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: postgres, sqlite", nil)
	}
	if d.DSN == "" {
		return errors.NewConfigurationError("DB_DSN cannot be empty when using database cache", nil)
	}
	return nil
}

func (s *SchedulerConfig) Validate() error {
	if !s.PrimeCache {
		return nil
	}
	if s.PrimeInterval < 1 {
		return errors.NewConfigurationError("SCHEDULER_PRIME_INTERVAL must be at least 1 minute", nil)
	}
	if s.PrimeInterval > maxPrimeInterval {
		return errors.NewConfigurationError("SCHEDULER_PRIME_INTERVAL cannot exceed 1440 minutes (24 hours)", nil)
	}
	return nil
}
