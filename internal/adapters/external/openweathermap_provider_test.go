package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherdialog.app/internal/mocks"
	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

const oneCallBody = `{
	"lat": 41.8781,
	"lon": -87.6298,
	"timezone": "America/Chicago",
	"current": {
		"dt": 1709301600,
		"sunrise": 1709295600,
		"sunset": 1709336700,
		"temp": 41.4,
		"feelsLike": 35.2,
		"humidity": 70,
		"windSpeed": 12.6,
		"windDeg": 300,
		"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}]
	},
	"hourly": [
		{"dt": 1709301600, "temp": 40.1, "pop": 0.35, "weather": [{"id": 804, "main": "Clouds", "description": "overcast clouds"}]}
	],
	"daily": [
		{"dt": 1709316000, "temp": {"min": 30.2, "max": 50.8, "day": 45}, "pop": 0.2, "weather": [{"id": 800, "main": "Clear", "description": "clear sky"}]}
	],
	"alerts": [
		{"sender_name": "NWS Chicago", "event": "Wind Advisory", "start": 1709301600, "end": 1709330400, "description": "Gusts up to 50 mph"}
	]
}`

func newTestOpenWeatherMap(t *testing.T, handler http.HandlerFunc) *OpenWeatherMapProviderAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:  "test-api-key",
		BaseURL: server.URL + "/v1/owm/",
		Logger:  mocks.NewLogger(),
	})
}

func TestOpenWeatherMapProvider_FetchForecast_Success(t *testing.T) {
	provider := newTestOpenWeatherMap(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/owm/onecall", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "minutely", q.Get("exclude"))
		assert.Equal(t, "41.8781", q.Get("lat"))
		assert.Equal(t, "-87.6298", q.Get("lon"))
		assert.Equal(t, "imperial", q.Get("units"))
		assert.Equal(t, "en", q.Get("lang"))
		assert.Equal(t, "test-api-key", q.Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(oneCallBody))
		assert.NoError(t, err)
	})

	payload, err := provider.FetchForecast(context.Background(), ports.ForecastQuery{
		MeasurementSystem: "imperial",
		Latitude:          41.8781,
		Longitude:         -87.6298,
		Language:          "en",
	})

	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", payload.Timezone)
	assert.Equal(t, 41.4, payload.Current.Temp)
	assert.Equal(t, 12.6, payload.Current.WindSpeed)
	assert.Equal(t, "Rain", payload.Current.Weather[0].Main)
	require.Len(t, payload.Hourly, 1)
	assert.Equal(t, 0.35, payload.Hourly[0].Pop)
	require.Len(t, payload.Daily, 1)
	assert.Equal(t, 50.8, payload.Daily[0].Temp.Max)
	assert.Equal(t, 45.0, payload.Daily[0].Temp.Day)
	require.Len(t, payload.Alerts, 1)
	assert.Equal(t, "NWS Chicago", payload.Alerts[0].SenderName)
	assert.Equal(t, "openweathermap", provider.GetProviderName())
}

func TestOpenWeatherMapProvider_FetchForecast_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		errorType errors.ErrorType
	}{
		{"Unauthorized", http.StatusUnauthorized, `{"message": "device not paired"}`, errors.ProviderAuthError},
		{"Forbidden", http.StatusForbidden, `{}`, errors.ProviderAuthError},
		{"ServerError", http.StatusBadGateway, `upstream down`, errors.ExternalAPIError},
		{"MalformedBody", http.StatusOK, `{"current": [}`, errors.ExternalAPIError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newTestOpenWeatherMap(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, err := w.Write([]byte(tt.body))
				assert.NoError(t, err)
			})

			payload, err := provider.FetchForecast(context.Background(), ports.ForecastQuery{MeasurementSystem: "metric"})

			assert.Nil(t, payload)
			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.errorType, appErr.Type)
		})
	}
}

func TestOpenWeatherMapProvider_UnsupportedUnits(t *testing.T) {
	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{BaseURL: "http://unused", Logger: mocks.NewLogger()})

	_, err := provider.FetchForecast(context.Background(), ports.ForecastQuery{MeasurementSystem: "kelvin"})

	assert.True(t, errors.IsValidationError(err))
}

func TestOpenWeatherMapProvider_CircuitOpensAfterFailures(t *testing.T) {
	calls := 0
	provider := newTestOpenWeatherMap(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	query := ports.ForecastQuery{MeasurementSystem: "metric"}
	for i := 0; i < 6; i++ {
		_, err := provider.FetchForecast(context.Background(), query)
		require.Error(t, err)
	}

	_, err := provider.FetchForecast(context.Background(), query)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.Equal(t, 6, calls)
}

func TestOpenWeatherMapProvider_ClientErrorsKeepCircuitClosed(t *testing.T) {
	calls := 0
	provider := newTestOpenWeatherMap(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	})

	query := ports.ForecastQuery{MeasurementSystem: "metric"}
	for i := 0; i < 10; i++ {
		_, err := provider.FetchForecast(context.Background(), query)
		require.True(t, errors.IsProviderAuthError(err), "got %v", err)
	}

	assert.Equal(t, 10, calls)
	assert.Equal(t, "closed", provider.BreakerState())
}

func TestCountsAsSuccess(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"NoError", nil, true},
		{"NotFound", &statusError{status: http.StatusNotFound}, true},
		{"Unauthorized", &statusError{status: http.StatusUnauthorized}, true},
		{"TooManyRequests", &statusError{status: http.StatusTooManyRequests}, false},
		{"ServerError", &statusError{status: http.StatusBadGateway}, false},
		{"Transport", assert.AnError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, countsAsSuccess(tt.err))
		})
	}
}
