package ports

import (
	"context"
	"time"
)

// WeatherConfig represents weather service configuration
type WeatherConfig struct {
	EnableCache bool
	CacheTTL    time.Duration
}

// DeviceConfig is the configured home location and unit preferences of the
// device answering requests.
type DeviceConfig struct {
	City            string
	Region          string
	Country         string
	Latitude        float64
	Longitude       float64
	Timezone        string
	SystemUnit      string
	TemperatureUnit string
	Language        string
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Type     string
	Redis    RedisConfig
	Database DatabaseConfig
}

// DatabaseConfig selects the gorm driver and data source of the database cache
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  int
	ReadTimeout  int
	WriteTimeout int
}

// SchedulerConfig represents scheduler configuration
type SchedulerConfig struct {
	PrimeCache    bool
	PrimeInterval int
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetDeviceConfig() DeviceConfig
	GetServerConfig() ServerConfig
	GetCacheConfig() CacheConfig
	GetSchedulerConfig() SchedulerConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordCacheHit(ctx context.Context)
	RecordCacheMiss(ctx context.Context)
	RecordWeatherAPICall(ctx context.Context, provider string, success bool)
	RecordIntent(ctx context.Context, intent string, outcome string, duration time.Duration)
}

// Clock supplies the current instant
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time {
	return time.Now()
}
