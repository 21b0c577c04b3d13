package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// OpenWeatherMapProviderAdapter implements ForecastProvider port with the
// OpenWeatherMap one call endpoint as served by the forecast proxy. The proxy
// holds the OpenWeatherMap key and answers with camelCase field names; an
// APIKey is only sent when one is configured.
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	breaker *gobreaker.CircuitBreaker
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Breaker BreakerSettings
	Client  HTTPClient
	Logger  ports.Logger
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	timeout := params.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: strings.TrimRight(params.BaseURL, "/"),
		client:  client,
		breaker: newCircuitBreaker("openweathermap", params.Breaker),
		logger:  params.Logger,
	}
}

// FetchForecast retrieves current, hourly and daily forecasts for a coordinate
func (p *OpenWeatherMapProviderAdapter) FetchForecast(ctx context.Context, query ports.ForecastQuery) (*ports.ForecastPayload, error) {
	if query.MeasurementSystem != "metric" && query.MeasurementSystem != "imperial" {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported measurement system %q", query.MeasurementSystem))
	}

	body, err := getJSONBody(ctx, p.client, p.breaker, p.oneCallURL(query), p.logger)
	if err != nil {
		if status, ok := statusOf(err); ok {
			if status == http.StatusUnauthorized || status == http.StatusForbidden {
				return nil, errors.NewProviderAuthError(fmt.Sprintf("OpenWeatherMap returned status %d", status), err)
			}
			return nil, errors.NewExternalAPIError(fmt.Sprintf("OpenWeatherMap returned status %d", status), err)
		}
		if errors.TypeOf(err) != errors.ErrorTypeUnknown {
			return nil, err
		}
		return nil, errors.NewExternalAPIError("failed to call OpenWeatherMap", err)
	}

	var payload ports.ForecastPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode OpenWeatherMap response", err)
	}
	return &payload, nil
}

func (p *OpenWeatherMapProviderAdapter) oneCallURL(query ports.ForecastQuery) string {
	values := url.Values{}
	values.Set("exclude", "minutely")
	values.Set("lat", strconv.FormatFloat(query.Latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(query.Longitude, 'f', -1, 64))
	values.Set("units", query.MeasurementSystem)
	if query.Language != "" {
		values.Set("lang", query.Language)
	}
	if p.apiKey != "" {
		values.Set("appid", p.apiKey)
	}
	return fmt.Sprintf("%s/onecall?%s", p.baseURL, values.Encode())
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}

// BreakerState reports the circuit breaker state: closed, half-open or open
func (p *OpenWeatherMapProviderAdapter) BreakerState() string {
	return p.breaker.State().String()
}
