package external

import (
	"context"
	"time"

	"weatherdialog.app/internal/ports"
)

// ForecastProviderLoggingDecorator decorates forecast providers with structured logging
type ForecastProviderLoggingDecorator struct {
	provider ports.ForecastProvider
	logger   ports.Logger
}

// NewForecastProviderLoggingDecorator creates a new logging decorator for forecast providers
func NewForecastProviderLoggingDecorator(provider ports.ForecastProvider, logger ports.Logger) *ForecastProviderLoggingDecorator {
	return &ForecastProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// FetchForecast wraps the provider call with structured logging
func (d *ForecastProviderLoggingDecorator) FetchForecast(ctx context.Context, query ports.ForecastQuery) (*ports.ForecastPayload, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Forecast API request started",
		ports.F("provider", providerName),
		ports.F("latitude", query.Latitude),
		ports.F("longitude", query.Longitude),
		ports.F("units", query.MeasurementSystem),
		ports.F("event", "request"))

	startTime := time.Now()
	payload, err := d.provider.FetchForecast(ctx, query)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Forecast API request failed",
			ports.F("provider", providerName),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Forecast API request completed",
		ports.F("provider", providerName),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("timezone", payload.Timezone),
		ports.F("hourly", len(payload.Hourly)),
		ports.F("daily", len(payload.Daily)),
		ports.F("alerts", len(payload.Alerts)))

	return payload, nil
}

// GetProviderName returns the name of the wrapped provider
func (d *ForecastProviderLoggingDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}

// GeocoderLoggingDecorator decorates the geocoder with structured logging
type GeocoderLoggingDecorator struct {
	geocoder ports.Geocoder
	logger   ports.Logger
}

// NewGeocoderLoggingDecorator creates a new logging decorator for the geocoder
func NewGeocoderLoggingDecorator(geocoder ports.Geocoder, logger ports.Logger) *GeocoderLoggingDecorator {
	return &GeocoderLoggingDecorator{
		geocoder: geocoder,
		logger:   logger,
	}
}

// Geolocate wraps the geocoder call with structured logging
func (d *GeocoderLoggingDecorator) Geolocate(ctx context.Context, place string) (*ports.GeoLocation, error) {
	d.logger.Info("Geolocation request started",
		ports.F("location", place),
		ports.F("event", "request"))

	startTime := time.Now()
	geo, err := d.geocoder.Geolocate(ctx, place)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Geolocation request failed",
			ports.F("location", place),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Geolocation request completed",
		ports.F("location", place),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("city", geo.City),
		ports.F("country", geo.Country),
		ports.F("timezone", geo.Timezone))

	return geo, nil
}
