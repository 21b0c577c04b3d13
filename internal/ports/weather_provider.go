package ports

import (
	"context"
	"time"
)

// ConditionPayload is one entry of the provider's "weather" list
type ConditionPayload struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentPayload holds the "current" block of a one call response
type CurrentPayload struct {
	Dt         int64              `json:"dt"`
	Sunrise    int64              `json:"sunrise"`
	Sunset     int64              `json:"sunset"`
	Temp       float64            `json:"temp"`
	FeelsLike  float64            `json:"feelsLike"`
	Pressure   int                `json:"pressure"`
	Humidity   int                `json:"humidity"`
	DewPoint   float64            `json:"dewPoint"`
	Clouds     int                `json:"clouds"`
	Visibility int                `json:"visibility"`
	WindSpeed  float64            `json:"windSpeed"`
	WindDeg    float64            `json:"windDeg"`
	Weather    []ConditionPayload `json:"weather"`
}

// HourlyPayload holds one entry of the "hourly" series
type HourlyPayload struct {
	Dt        int64              `json:"dt"`
	Temp      float64            `json:"temp"`
	FeelsLike float64            `json:"feelsLike"`
	Pressure  int                `json:"pressure"`
	Humidity  int                `json:"humidity"`
	DewPoint  float64            `json:"dewPoint"`
	Clouds    int                `json:"clouds"`
	WindSpeed float64            `json:"windSpeed"`
	WindDeg   float64            `json:"windDeg"`
	Weather   []ConditionPayload `json:"weather"`
	Pop       float64            `json:"pop"`
}

// DailyFeelsLikePayload holds the per-period feels like values of a day
type DailyFeelsLikePayload struct {
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

// DailyTemperaturePayload adds the day's extremes to the per-period values
type DailyTemperaturePayload struct {
	DailyFeelsLikePayload
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DailyPayload holds one entry of the "daily" series
type DailyPayload struct {
	Dt        int64                   `json:"dt"`
	Sunrise   int64                   `json:"sunrise"`
	Sunset    int64                   `json:"sunset"`
	Temp      DailyTemperaturePayload `json:"temp"`
	FeelsLike DailyFeelsLikePayload   `json:"feelsLike"`
	Pressure  int                     `json:"pressure"`
	Humidity  int                     `json:"humidity"`
	DewPoint  float64                 `json:"dewPoint"`
	Clouds    int                     `json:"clouds"`
	WindSpeed float64                 `json:"windSpeed"`
	WindDeg   float64                 `json:"windDeg"`
	Weather   []ConditionPayload      `json:"weather"`
	Pop       float64                 `json:"pop"`
}

// AlertPayload holds one government weather alert
type AlertPayload struct {
	SenderName  string `json:"sender_name,omitempty"`
	Event       string `json:"event"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Description string `json:"description"`
}

// ForecastPayload is the raw one call response the forecast model is built from
type ForecastPayload struct {
	Lat      float64         `json:"lat"`
	Lon      float64         `json:"lon"`
	Timezone string          `json:"timezone"`
	Current  CurrentPayload  `json:"current"`
	Hourly   []HourlyPayload `json:"hourly"`
	Daily    []DailyPayload  `json:"daily"`
	Alerts   []AlertPayload  `json:"alerts,omitempty"`
}

// ForecastQuery identifies one forecast fetch
type ForecastQuery struct {
	MeasurementSystem string
	Latitude          float64
	Longitude         float64
	Language          string
}

// CachedForecast is a payload together with the time it was fetched
type CachedForecast struct {
	FetchedAt time.Time        `json:"fetched_at"`
	Payload   *ForecastPayload `json:"payload"`
}

// ForecastProvider defines the contract for the weather data provider
type ForecastProvider interface {
	FetchForecast(ctx context.Context, query ForecastQuery) (*ForecastPayload, error)
	GetProviderName() string
}

// ForecastCache defines the contract for caching provider responses
type ForecastCache interface {
	Get(ctx context.Context, key string) (*CachedForecast, error)
	Set(ctx context.Context, key string, forecast *CachedForecast, ttl time.Duration) error
}
