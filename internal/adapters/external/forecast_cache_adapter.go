package external

import (
	"context"
	"encoding/json"
	"time"

	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// ForecastCacheAdapter bridges generic CacheProvider to the ForecastCache port
type ForecastCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

// NewForecastCacheAdapter creates a forecast cache on top of a generic cache provider
func NewForecastCacheAdapter(cacheProvider ports.CacheProvider) *ForecastCacheAdapter {
	return &ForecastCacheAdapter{
		cacheProvider: cacheProvider,
	}
}

// Get retrieves a cached provider response. A miss is a NotFound error.
func (a *ForecastCacheAdapter) Get(ctx context.Context, key string) (*ports.CachedForecast, error) {
	data, err := a.cacheProvider.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var cached ports.CachedForecast
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, errors.NewExternalAPIError("failed to deserialize cached forecast", err)
	}
	if cached.Payload == nil {
		return nil, errors.NewNotFoundError("cached forecast has no payload")
	}
	return &cached, nil
}

// Set stores a provider response with the time it was fetched
func (a *ForecastCacheAdapter) Set(ctx context.Context, key string, forecast *ports.CachedForecast, ttl time.Duration) error {
	if forecast == nil || forecast.Payload == nil {
		return errors.NewValidationError("cached forecast cannot be empty")
	}

	data, err := json.Marshal(forecast)
	if err != nil {
		return errors.NewExternalAPIError("failed to serialize forecast", err)
	}
	return a.cacheProvider.Set(ctx, key, data, ttl)
}

var _ ports.ForecastCache = (*ForecastCacheAdapter)(nil)
