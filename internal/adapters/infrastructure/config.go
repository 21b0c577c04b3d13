package infrastructure

import (
	"weatherdialog.app/internal/config"
	"weatherdialog.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}

// GetWeatherConfig returns weather configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		EnableCache: c.config.Weather.EnableCache,
		CacheTTL:    c.config.Weather.CacheTTL(),
	}
}

// GetDeviceConfig returns the device location and unit settings
func (c *ConfigProviderAdapter) GetDeviceConfig() ports.DeviceConfig {
	device := c.config.Device
	return ports.DeviceConfig{
		City:            device.City,
		Region:          device.Region,
		Country:         device.Country,
		Latitude:        device.Latitude,
		Longitude:       device.Longitude,
		Timezone:        device.Timezone,
		SystemUnit:      device.SystemUnit,
		TemperatureUnit: device.TemperatureUnit,
		Language:        device.Language,
	}
}

// GetCacheConfig returns cache configuration
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
		Redis: ports.RedisConfig{
			Addr:         c.config.Cache.Redis.Addr,
			Password:     c.config.Cache.Redis.Password,
			DB:           c.config.Cache.Redis.DB,
			DialTimeout:  c.config.Cache.Redis.DialTimeout,
			ReadTimeout:  c.config.Cache.Redis.ReadTimeout,
			WriteTimeout: c.config.Cache.Redis.WriteTimeout,
		},
		Database: ports.DatabaseConfig{
			Driver: c.config.Cache.Database.Driver,
			DSN:    c.config.Cache.Database.DSN,
		},
	}
}

// GetSchedulerConfig returns scheduler configuration
func (c *ConfigProviderAdapter) GetSchedulerConfig() ports.SchedulerConfig {
	return ports.SchedulerConfig{
		PrimeCache:    c.config.Scheduler.PrimeCache,
		PrimeInterval: c.config.Scheduler.PrimeInterval,
	}
}

var _ ports.ConfigProvider = (*ConfigProviderAdapter)(nil)
