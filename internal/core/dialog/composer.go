// Package dialog turns a selected forecast entry into the name of a response
// template and the values substituted into it.
package dialog

import (
	"fmt"
	"strings"
	"time"

	"weatherdialog.app/internal/core/forecast"
	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// Dialog is a template name plus its substitution data
type Dialog struct {
	Name string                 `json:"dialog"`
	Data map[string]interface{} `json:"data"`
}

// Spoken time formats
const (
	ClockFormat = "3:04 PM"
	HourFormat  = "15:00"
)

// Settings is what a Composer needs to know about the request
type Settings struct {
	Units forecast.Units
	// DeviceCountry decides between "city, region" and "city, country"
	DeviceCountry string
	// Geolocation is the zero value when the request named no place
	Geolocation ports.GeoLocation
	// Now is the current instant in the target place
	Now time.Time
}

// Composer builds dialogs for one request
type Composer struct {
	settings Settings
}

// NewComposer creates a new composer
func NewComposer(settings Settings) *Composer {
	return &Composer{settings: settings}
}

func (c *Composer) build(key Key, data map[string]interface{}) Dialog {
	if data == nil {
		data = map[string]interface{}{}
	}
	if c.settings.Geolocation.IsZero() {
		key.Placement = PlacementLocal
	} else {
		key.Placement = PlacementLocation
		data["location"] = c.spokenLocation()
	}
	return Dialog{Name: key.Render(), Data: data}
}

func (c *Composer) spokenLocation() string {
	geo := c.settings.Geolocation
	if strings.EqualFold(c.settings.DeviceCountry, geo.Country) {
		return geo.City + ", " + geo.Region
	}
	return geo.City + ", " + geo.Country
}

func (c *Composer) isToday(t time.Time) bool {
	return forecast.SameDate(t, c.settings.Now)
}

func scopeOf(entry forecast.Forecast) Scope {
	switch entry.(type) {
	case *forecast.HourlyWeather:
		return ScopeHourly
	case *forecast.DailyWeather:
		return ScopeDaily
	default:
		return ScopeCurrent
	}
}

func dayName(t time.Time) string {
	return t.Weekday().String()
}

// Weather describes the conditions of any forecast entry
func (c *Composer) Weather(entry forecast.Forecast) Dialog {
	switch e := entry.(type) {
	case *forecast.HourlyWeather:
		return c.HourlyWeather(e)
	case *forecast.DailyWeather:
		return c.DailyWeather(e)
	case *forecast.CurrentWeather:
		return c.CurrentWeather(e)
	default:
		panic(fmt.Sprintf("dialog: unsupported forecast entry %T", entry))
	}
}

// CurrentWeather describes the observed conditions
func (c *Composer) CurrentWeather(current *forecast.CurrentWeather) Dialog {
	return c.build(Key{Scope: ScopeCurrent, Aspect: AspectWeather}, map[string]interface{}{
		"condition":        current.Condition.Description,
		"temperature":      current.Temperature,
		"temperature_unit": c.settings.Units.Temperature,
	})
}

// HighLow speaks today's extremes after the current conditions. It never
// names the place, which the preceding dialog already did.
func (c *Composer) HighLow(current *forecast.CurrentWeather) Dialog {
	key := Key{Scope: ScopeCurrent, Aspect: AspectHighLow}
	return Dialog{
		Name: key.Render(),
		Data: map[string]interface{}{
			"high_temperature": current.HighTemperature,
			"low_temperature":  current.LowTemperature,
		},
	}
}

// HourlyWeather describes one hour
func (c *Composer) HourlyWeather(hour *forecast.HourlyWeather) Dialog {
	return c.build(Key{Scope: ScopeHourly, Aspect: AspectWeather}, map[string]interface{}{
		"condition":   hour.Condition.Description,
		"time":        hour.DateTime.Format(HourFormat),
		"temperature": hour.Temperature,
	})
}

// DailyWeather describes one day, naming it "Today" when it is
func (c *Composer) DailyWeather(day *forecast.DailyWeather) Dialog {
	spokenDay := dayName(day.DateTime)
	if c.isToday(day.DateTime) {
		spokenDay = "Today"
	}
	return c.build(Key{Scope: ScopeDaily, Aspect: AspectWeather}, map[string]interface{}{
		"condition":        day.Condition.Description,
		"day":              spokenDay,
		"high_temperature": day.Temperature.High,
		"low_temperature":  day.Temperature.Low,
	})
}

// Temperature speaks a temperature, or a day's high or low
func (c *Composer) Temperature(entry forecast.Forecast, qualifier Qualifier) Dialog {
	key := Key{Scope: scopeOf(entry), Aspect: AspectTemperature}
	data := map[string]interface{}{}

	switch e := entry.(type) {
	case *forecast.DailyWeather:
		key.Qualifier = qualifier
		switch qualifier {
		case QualifierHigh:
			data["temperature"] = e.Temperature.High
		case QualifierLow:
			data["temperature"] = e.Temperature.Low
		default:
			data["temperature"] = e.Temperature.Day
		}
		data["day"] = dayName(e.DateTime)
	case *forecast.HourlyWeather:
		data["temperature"] = e.Temperature
		data["time"] = TimePeriod(e.DateTime)
	case *forecast.CurrentWeather:
		key.Qualifier = qualifier
		switch qualifier {
		case QualifierHigh:
			data["temperature"] = e.HighTemperature
		case QualifierLow:
			data["temperature"] = e.LowTemperature
		default:
			data["temperature"] = e.Temperature
		}
	}

	data["temperature_unit"] = c.settings.Units.Temperature
	return c.build(key, data)
}

// Wind speaks speed, direction and strength of the wind
func (c *Composer) Wind(entry forecast.Forecast) Dialog {
	weather := entry.Common()
	key := Key{
		Scope:        scopeOf(entry),
		Aspect:       AspectWind,
		WindStrength: weather.WindStrength(c.settings.Units.Speed),
	}
	data := map[string]interface{}{
		"speed":      weather.WindSpeed,
		"speed_unit": c.settings.Units.Speed,
		"direction":  weather.WindDirection,
	}

	switch key.Scope {
	case ScopeDaily:
		data["day"] = dayName(weather.DateTime)
	case ScopeHourly:
		data["time"] = weather.DateTime.Format(ClockFormat)
	}
	return c.build(key, data)
}

// Humidity speaks the relative humidity. Hourly entries are spoken with the
// current template. A reading of exactly zero means the provider does not
// know it.
func (c *Composer) Humidity(entry forecast.Forecast) (Dialog, error) {
	weather := entry.Common()
	if weather.Humidity == 0 {
		return Dialog{}, errors.NewMissingDataError("humidity not reported")
	}

	key := Key{Scope: ScopeCurrent, Aspect: AspectHumidity}
	data := map[string]interface{}{"percent": weather.Humidity}
	if _, ok := entry.(*forecast.DailyWeather); ok {
		key.Scope = ScopeDaily
		data["day"] = dayName(weather.DateTime)
	}
	return c.build(key, data), nil
}

// Condition answers whether requested is expected
func (c *Composer) Condition(entry forecast.Forecast, requested Condition) Dialog {
	weather := entry.Common()
	actual := ParseCondition(weather.Condition.Category)
	key := Key{
		Scope:     scopeOf(entry),
		Aspect:    AspectCondition,
		Condition: requested,
		Match:     MatchCondition(requested, actual),
	}
	data := map[string]interface{}{"condition": strings.ToLower(weather.Condition.Category)}

	switch key.Scope {
	case ScopeDaily:
		data["day"] = dayName(weather.DateTime)
	case ScopeHourly:
		data["time"] = weather.DateTime.Format(ClockFormat)
	}
	return c.build(key, data)
}

// NextPrecipitation speaks the next onset of precipitation, entry being nil
// when none is expected.
func (c *Composer) NextPrecipitation(entry forecast.Forecast, timeframe forecast.Timeframe) Dialog {
	if entry == nil {
		return c.build(Key{Scope: ScopeDaily, Aspect: AspectPrecipitationNone}, nil)
	}

	weather := entry.Common()
	data := map[string]interface{}{
		"precipitation": "rain",
		"day":           dayName(weather.DateTime),
	}
	switch e := entry.(type) {
	case *forecast.HourlyWeather:
		data["percent"] = e.ChanceOfPrecipitation
	case *forecast.DailyWeather:
		data["percent"] = e.ChanceOfPrecipitation
	}

	key := Key{Scope: ScopeHourly, Aspect: AspectPrecipitationNext}
	if timeframe == forecast.TimeframeDaily {
		key.Scope = ScopeDaily
	} else {
		data["time"] = TimePeriod(weather.DateTime)
	}
	return c.build(key, data)
}

// Sunrise speaks the time of sunrise
func (c *Composer) Sunrise(entry forecast.Forecast) (Dialog, error) {
	return c.sunEvent(entry, AspectSunrise)
}

// Sunset speaks the time of sunset
func (c *Composer) Sunset(entry forecast.Forecast) (Dialog, error) {
	return c.sunEvent(entry, AspectSunset)
}

func (c *Composer) sunEvent(entry forecast.Forecast, aspect Aspect) (Dialog, error) {
	pick := func(sunrise, sunset time.Time) time.Time {
		if aspect == AspectSunrise {
			return sunrise
		}
		return sunset
	}

	key := Key{Aspect: aspect}
	var at time.Time
	switch e := entry.(type) {
	case *forecast.DailyWeather:
		key.Scope = ScopeDaily
		at = pick(e.Sunrise, e.Sunset)
	case *forecast.CurrentWeather:
		key.Scope = ScopeCurrent
		at = pick(e.Sunrise, e.Sunset)
		key.Temporal = TemporalPast
		if c.settings.Now.Before(at) {
			key.Temporal = TemporalFuture
		}
	default:
		return Dialog{}, errors.NewValidationError(fmt.Sprintf("no sunrise or sunset in %T", entry))
	}

	return c.build(key, map[string]interface{}{"time": at.Format(ClockFormat)}), nil
}

// TimePeriod names the part of the day t falls in
func TimePeriod(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour >= 1 && hour < 5:
		return "early morning"
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 20:
		return "evening"
	default:
		return "overnight"
	}
}
