package external

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"weatherdialog.app/internal/ports"
)

// RateLimitedForecastProvider wraps a ForecastProvider with rate limiting
type RateLimitedForecastProvider struct {
	provider ports.ForecastProvider
	limiter  *rate.Limiter
}

// NewRateLimitedForecastProvider creates a new rate limited forecast provider.
// rps may be fractional for less than one request per second; burst is the
// maximum burst size allowed.
func NewRateLimitedForecastProvider(provider ports.ForecastProvider, rps float64, burst int) *RateLimitedForecastProvider {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedForecastProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// FetchForecast fetches the forecast, respecting the rate limit
func (r *RateLimitedForecastProvider) FetchForecast(ctx context.Context, query ports.ForecastQuery) (*ports.ForecastPayload, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.FetchForecast(ctx, query)
}

// GetProviderName returns the wrapped provider's name
func (r *RateLimitedForecastProvider) GetProviderName() string {
	return r.provider.GetProviderName()
}

var (
	_ ports.ForecastProvider = (*RateLimitedForecastProvider)(nil)
	_ ports.ForecastProvider = (*ForecastProviderLoggingDecorator)(nil)
	_ ports.ForecastProvider = (*OpenWeatherMapProviderAdapter)(nil)
	_ ports.Geocoder         = (*GeocoderLoggingDecorator)(nil)
	_ ports.Geocoder         = (*GeolocationProviderAdapter)(nil)
)
