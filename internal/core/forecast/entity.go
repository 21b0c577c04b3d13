// Package forecast holds the typed forecast model built from one provider
// response and the selectors that pick the slice of it a request is about.
package forecast

import "time"

// Timeframe names the series a request is answered from
type Timeframe string

const (
	TimeframeCurrent Timeframe = "current"
	TimeframeHourly  Timeframe = "hourly"
	TimeframeDaily   Timeframe = "daily"
)

// String returns the timeframe name
func (t Timeframe) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known timeframes
func (t Timeframe) IsValid() bool {
	return t == TimeframeCurrent || t == TimeframeHourly || t == TimeframeDaily
}

// WeatherCondition is the provider's condition entry, kept verbatim.
// Category is the key used for condition matching.
type WeatherCondition struct {
	ID          int
	Category    string
	Description string
	Icon        string
}

// Weather holds the fields shared by every forecast period
type Weather struct {
	DateTime      time.Time
	Pressure      int
	Humidity      int
	DewPoint      float64
	Clouds        int
	WindSpeed     int
	WindDirection string
	Condition     WeatherCondition
}

// Common returns the shared fields
func (w *Weather) Common() *Weather {
	return w
}

// Forecast is implemented by *CurrentWeather, *HourlyWeather and *DailyWeather.
// Callers tell them apart with a type switch.
type Forecast interface {
	Common() *Weather
}

// CurrentWeather is the observed weather at report time. It has no extremes
// of its own; High/LowTemperature are borrowed from today's daily entry.
type CurrentWeather struct {
	Weather
	Temperature     int
	FeelsLike       float64
	Sunrise         time.Time
	Sunset          time.Time
	Visibility      int
	HighTemperature int
	LowTemperature  int
}

// HourlyWeather is one hour of the hourly series
type HourlyWeather struct {
	Weather
	Temperature           int
	FeelsLike             float64
	ChanceOfPrecipitation int
}

// DailyFeelsLike holds rounded per-period values of a day
type DailyFeelsLike struct {
	Day     int
	Night   int
	Evening int
	Morning int
}

// DailyTemperature adds the day's extremes to the per-period values
type DailyTemperature struct {
	DailyFeelsLike
	Low  int
	High int
}

// DailyWeather is one day of the daily series
type DailyWeather struct {
	Weather
	Temperature           DailyTemperature
	FeelsLike             DailyFeelsLike
	Sunrise               time.Time
	Sunset                time.Time
	ChanceOfPrecipitation int
}

// WeatherAlert is a government alert attached to the report
type WeatherAlert struct {
	Sender      string
	Event       string
	Start       time.Time
	End         time.Time
	Description string
}

// WeatherReport is the aggregate built once per request. Index 0 of Hourly is
// the current hour and index 0 of Daily is today, both in the report's own
// timezone.
type WeatherReport struct {
	Timezone *time.Location
	Current  *CurrentWeather
	Hourly   []*HourlyWeather
	Daily    []*DailyWeather
	Alerts   []*WeatherAlert
}
