package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// GeolocationProviderAdapter implements Geocoder port against the proxy's
// geolocation endpoint
type GeolocationProviderAdapter struct {
	baseURL string
	client  HTTPClient
	breaker *gobreaker.CircuitBreaker
	logger  ports.Logger
}

// GeolocationProviderParams holds parameters for creating the geocoder
type GeolocationProviderParams struct {
	BaseURL string
	Timeout time.Duration
	Breaker BreakerSettings
	Client  HTTPClient
	Logger  ports.Logger
}

// NewGeolocationProviderAdapter creates a new geocoder adapter
func NewGeolocationProviderAdapter(params GeolocationProviderParams) *GeolocationProviderAdapter {
	timeout := params.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &GeolocationProviderAdapter{
		baseURL: strings.TrimRight(params.BaseURL, "/"),
		client:  client,
		breaker: newCircuitBreaker("geolocation", params.Breaker),
		logger:  params.Logger,
	}
}

// Geolocate resolves a spoken place name
func (g *GeolocationProviderAdapter) Geolocate(ctx context.Context, place string) (*ports.GeoLocation, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, errors.NewValidationError("location cannot be empty")
	}

	endpoint := fmt.Sprintf("%s/geolocation?%s", g.baseURL, url.Values{"location": {place}}.Encode())
	body, err := getJSONBody(ctx, g.client, g.breaker, endpoint, g.logger)
	if err != nil {
		if status, ok := statusOf(err); ok {
			switch status {
			case http.StatusNotFound:
				return nil, errors.NewLocationNotFoundError("no geolocation for "+place, err)
			case http.StatusUnauthorized, http.StatusForbidden:
				return nil, errors.NewProviderAuthError(fmt.Sprintf("geolocation returned status %d", status), err)
			}
			return nil, errors.NewExternalAPIError(fmt.Sprintf("geolocation returned status %d", status), err)
		}
		if errors.TypeOf(err) != errors.ErrorTypeUnknown {
			return nil, err
		}
		return nil, errors.NewExternalAPIError("failed to call geolocation", err)
	}

	// The endpoint answers an empty object or null for an unknown place
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" || trimmed == "{}" {
		return nil, errors.NewLocationNotFoundError("no geolocation for "+place, nil)
	}

	var geo ports.GeoLocation
	if err := json.Unmarshal(body, &geo); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode geolocation response", err)
	}
	if geo.City == "" {
		return nil, errors.NewLocationNotFoundError("no geolocation for "+place, nil)
	}
	return &geo, nil
}

// BreakerState reports the circuit breaker state: closed, half-open or open
func (g *GeolocationProviderAdapter) BreakerState() string {
	return g.breaker.State().String()
}
