package external

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"weatherdialog.app/internal/mocks"
	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

func TestForecastProviderLoggingDecorator(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		provider := mocks.NewForecastProvider(t)
		provider.On("GetProviderName").Return("openweathermap")
		provider.On("FetchForecast", mock.Anything, mock.Anything).
			Return(&ports.ForecastPayload{Timezone: "UTC", Hourly: make([]ports.HourlyPayload, 48)}, nil).Once()
		logger := mocks.NewRecordingLogger()

		decorated := NewForecastProviderLoggingDecorator(provider, logger)
		payload, err := decorated.FetchForecast(context.Background(), ports.ForecastQuery{MeasurementSystem: "metric"})

		require.NoError(t, err)
		assert.Equal(t, "UTC", payload.Timezone)
		assert.Equal(t, []string{"Forecast API request started", "Forecast API request completed"}, logger.Messages())
		completed := logger.Entries()[1]
		assert.Equal(t, 48, completed.Fields["hourly"])
		assert.Contains(t, completed.Fields, "duration_ms")
		assert.Equal(t, "openweathermap", decorated.GetProviderName())
	})

	t.Run("Failure", func(t *testing.T) {
		provider := mocks.NewForecastProvider(t)
		provider.On("GetProviderName").Return("openweathermap")
		provider.On("FetchForecast", mock.Anything, mock.Anything).
			Return(nil, errors.NewExternalAPIError("timeout", nil)).Once()
		logger := mocks.NewRecordingLogger()

		_, err := NewForecastProviderLoggingDecorator(provider, logger).
			FetchForecast(context.Background(), ports.ForecastQuery{})

		assert.Error(t, err)
		entries := logger.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "error", entries[1].Level)
		assert.Equal(t, "Forecast API request failed", entries[1].Message)
	})
}

func TestGeocoderLoggingDecorator(t *testing.T) {
	geocoder := mocks.NewGeocoder(t)
	geocoder.On("Geolocate", mock.Anything, "Paris").
		Return(&ports.GeoLocation{City: "Paris", Country: "France", Timezone: "Europe/Paris"}, nil).Once()
	geocoder.On("Geolocate", mock.Anything, "Atlantis").
		Return(nil, errors.NewLocationNotFoundError("unknown", nil)).Once()
	logger := mocks.NewRecordingLogger()
	decorated := NewGeocoderLoggingDecorator(geocoder, logger)

	geo, err := decorated.Geolocate(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, "Paris", geo.City)

	_, err = decorated.Geolocate(context.Background(), "Atlantis")
	assert.True(t, errors.IsLocationNotFoundError(err))

	assert.Equal(t, []string{
		"Geolocation request started",
		"Geolocation request completed",
		"Geolocation request started",
		"Geolocation request failed",
	}, logger.Messages())
}

func TestRateLimitedForecastProvider(t *testing.T) {
	provider := mocks.NewForecastProvider(t)
	provider.On("GetProviderName").Return("openweathermap")
	provider.On("FetchForecast", mock.Anything, mock.Anything).Return(&ports.ForecastPayload{}, nil).Once()

	// one token, refilled once a minute
	limited := NewRateLimitedForecastProvider(provider, 1.0/60, 1)
	assert.Equal(t, "openweathermap", limited.GetProviderName())

	_, err := limited.FetchForecast(context.Background(), ports.ForecastQuery{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = limited.FetchForecast(ctx, ports.ForecastQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait canceled")
}
