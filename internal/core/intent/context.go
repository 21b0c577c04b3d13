package intent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"weatherdialog.app/internal/core/forecast"
	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// ResolverDependencies holds the collaborators a Resolver needs
type ResolverDependencies struct {
	Geocoder          ports.Geocoder
	DatetimeExtractor ports.DatetimeExtractor
	Clock             ports.Clock
	// DeviceTimezone is the device's own zone; nil means time.Local
	DeviceTimezone *time.Location
}

// Resolver creates request contexts sharing the same collaborators
type Resolver struct {
	geocoder       ports.Geocoder
	extractor      ports.DatetimeExtractor
	clock          ports.Clock
	deviceTimezone *time.Location
}

// NewResolver creates a new context resolver
func NewResolver(deps ResolverDependencies) (*Resolver, error) {
	if deps.Geocoder == nil {
		return nil, errors.NewValidationError("geocoder is required")
	}
	if deps.DatetimeExtractor == nil {
		return nil, errors.NewValidationError("datetime extractor is required")
	}
	if deps.Clock == nil {
		return nil, errors.NewValidationError("clock is required")
	}

	tz := deps.DeviceTimezone
	if tz == nil {
		tz = time.Local
	}

	return &Resolver{
		geocoder:       deps.Geocoder,
		extractor:      deps.DatetimeExtractor,
		clock:          deps.Clock,
		deviceTimezone: tz,
	}, nil
}

// NewContext wraps a request. Nothing is looked up until first asked for.
func (r *Resolver) NewContext(req Request) *Context {
	return &Context{Request: req, resolver: r}
}

// Context is the per-request view of where and when a question is about.
// Each lookup runs at most once and its result, error included, is kept for
// the lifetime of the context. A Context must not be shared between
// goroutines.
type Context struct {
	Request

	resolver *Resolver

	geolocationResolved bool
	geolocation         ports.GeoLocation
	geolocationErr      error

	locationDatetimeResolved bool
	locationDatetime         time.Time
	locationDatetimeErr      error

	intentDatetimeResolved bool
	intentDatetime         time.Time
	intentDatetimeErr      error
}

// Geolocation returns the resolved place, or the zero GeoLocation when the
// request names none.
func (c *Context) Geolocation(ctx context.Context) (ports.GeoLocation, error) {
	if !c.geolocationResolved {
		c.geolocation, c.geolocationErr = c.resolveGeolocation(ctx)
		c.geolocationResolved = true
	}
	return c.geolocation, c.geolocationErr
}

func (c *Context) resolveGeolocation(ctx context.Context) (ports.GeoLocation, error) {
	if !c.HasLocation() {
		return ports.GeoLocation{}, nil
	}

	geo, err := c.resolver.geocoder.Geolocate(ctx, c.Location)
	if errors.IsLocationNotFoundError(err) {
		return ports.GeoLocation{}, errors.NewLocationNotFoundError(fmt.Sprintf("location %s is unknown", c.Location), err).
			WithDetail("location", c.Location)
	}
	if err != nil {
		return ports.GeoLocation{}, err
	}
	if geo == nil || strings.TrimSpace(geo.City) == "" {
		return ports.GeoLocation{}, errors.NewLocationNotFoundError(fmt.Sprintf("location %s is unknown", c.Location), nil).
			WithDetail("location", c.Location)
	}

	// The geocoder answers something for nearly any text; reject places that
	// are not the one asked for.
	if !strings.Contains(strings.ToLower(c.Location), strings.ToLower(geo.City)) {
		return ports.GeoLocation{}, errors.NewLocationNotFoundError(c.Location+" is not a city", nil).
			WithDetail("location", c.Location)
	}
	return *geo, nil
}

// LocationDatetime returns now in the requested place's timezone, or device
// local now when the request names no place.
func (c *Context) LocationDatetime(ctx context.Context) (time.Time, error) {
	if !c.locationDatetimeResolved {
		c.locationDatetime, c.locationDatetimeErr = c.resolveLocationDatetime(ctx)
		c.locationDatetimeResolved = true
	}
	return c.locationDatetime, c.locationDatetimeErr
}

func (c *Context) resolveLocationDatetime(ctx context.Context) (time.Time, error) {
	geo, err := c.Geolocation(ctx)
	if err != nil {
		return time.Time{}, err
	}

	now := c.resolver.clock.Now()
	if geo.IsZero() {
		return now.In(c.resolver.deviceTimezone), nil
	}

	tz, err := time.LoadLocation(geo.Timezone)
	if err != nil {
		return time.Time{}, errors.NewLocationNotFoundError("unknown timezone for "+geo.City, err).
			WithDetail("location", c.Location)
	}
	return now.In(tz), nil
}

// IntentDatetime returns the date or time named in the utterance, or the
// location datetime when none is named. Dates before today or more than
// seven days ahead are rejected.
func (c *Context) IntentDatetime(ctx context.Context) (time.Time, error) {
	if !c.intentDatetimeResolved {
		c.intentDatetime, c.intentDatetimeErr = c.resolveIntentDatetime(ctx)
		c.intentDatetimeResolved = true
	}
	return c.intentDatetime, c.intentDatetimeErr
}

func (c *Context) resolveIntentDatetime(ctx context.Context) (time.Time, error) {
	anchor, err := c.LocationDatetime(ctx)
	if err != nil {
		return time.Time{}, err
	}

	extracted, err := c.resolver.extractor.Extract(c.Utterance, anchor, c.Language)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ValidationError, "could not read a date from the utterance", err)
	}
	if extracted == nil {
		return anchor, nil
	}

	requested := extracted.When.In(anchor.Location())
	if int(requested.Sub(anchor)/(24*time.Hour)) > forecast.MaxForecastDays {
		return time.Time{}, errors.NewHorizonExceededError(
			fmt.Sprintf("forecasts only go %d days ahead", forecast.MaxForecastDays), requested.Weekday().String())
	}
	if forecast.DateBefore(requested, anchor) {
		return time.Time{}, errors.NewHistoricalDateError("historical weather is not supported")
	}
	return requested, nil
}

// Datetimes returns the anchor and requested instants together, the pair
// every selector works from.
func (c *Context) Datetimes(ctx context.Context) (anchor, requested time.Time, err error) {
	if anchor, err = c.LocationDatetime(ctx); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if requested, err = c.IntentDatetime(ctx); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return anchor, requested, nil
}
