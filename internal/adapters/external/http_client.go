// Package external provides adapters for external services
// These adapters implement ports for the forecast provider, the geocoder and the response caches.
package external

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxBodySize caps how much of a provider response is read
const maxBodySize = 4 << 20

// BreakerSettings configures the circuit breaker wrapped around a remote API
type BreakerSettings struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.MaxRequests == 0 {
		s.MaxRequests = 5
	}
	if s.Interval == 0 {
		s.Interval = time.Minute
	}
	if s.Timeout == 0 {
		s.Timeout = 2 * time.Minute
	}
	return s
}

func newCircuitBreaker(name string, settings BreakerSettings) *gobreaker.CircuitBreaker {
	settings = settings.withDefaults()
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  settings.MaxRequests,
		Interval:     settings.Interval,
		Timeout:      settings.Timeout,
		IsSuccessful: countsAsSuccess,
	})
}

// countsAsSuccess keeps client errors from tripping the breaker. An unknown
// place or a rejected key is an answer from a healthy service; 429 is not.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	status, ok := statusOf(err)
	return ok && status >= 400 && status < 500 && status != http.StatusTooManyRequests
}

// statusError carries a non-2xx response through the circuit breaker
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.status, e.body)
}

// getJSONBody performs a GET through the breaker and returns the body of a 2xx
// response. Non-2xx responses come back as *statusError.
func getJSONBody(ctx context.Context, client HTTPClient, cb *gobreaker.CircuitBreaker, url string, logger ports.Logger) ([]byte, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() {
			if closeErr := resp.Body.Close(); closeErr != nil {
				logger.Warn("Failed to close response body", ports.F("error", closeErr))
			}
		}()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			snippet := string(body)
			if len(snippet) > 200 {
				snippet = snippet[:200]
			}
			return nil, &statusError{status: resp.StatusCode, body: snippet}
		}
		return body, nil
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.NewExternalAPIError("circuit breaker open for "+cb.Name(), err)
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}

func statusOf(err error) (int, bool) {
	var se *statusError
	if stderrors.As(err, &se) {
		return se.status, true
	}
	return 0, false
}
