package forecast

import (
	"fmt"
	"math"
	"time"

	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// Series length limits of a one call response
const (
	MaxDailyEntries  = 8
	MaxHourlyEntries = 49
)

// NewWeatherReport builds the typed report from one provider response.
// Every timestamp is converted into the report's own timezone.
func NewWeatherReport(payload *ports.ForecastPayload) (*WeatherReport, error) {
	if payload == nil {
		return nil, errors.NewExternalAPIError("malformed forecast: empty response", nil)
	}
	if n := len(payload.Daily); n < 1 || n > MaxDailyEntries {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("malformed forecast: %d daily entries", n), nil)
	}
	if n := len(payload.Hourly); n < 1 || n > MaxHourlyEntries {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("malformed forecast: %d hourly entries", n), nil)
	}

	tz, err := time.LoadLocation(payload.Timezone)
	if err != nil {
		return nil, errors.NewExternalAPIError("malformed forecast: unknown timezone "+payload.Timezone, err)
	}

	current, err := newCurrentWeather(payload.Current, tz)
	if err != nil {
		return nil, err
	}

	report := &WeatherReport{
		Timezone: tz,
		Current:  current,
		Hourly:   make([]*HourlyWeather, 0, len(payload.Hourly)),
		Daily:    make([]*DailyWeather, 0, len(payload.Daily)),
	}

	for i, hour := range payload.Hourly {
		entry, err := newHourlyWeather(hour, tz)
		if err != nil {
			return nil, fmt.Errorf("hourly[%d]: %w", i, err)
		}
		report.Hourly = append(report.Hourly, entry)
	}

	for i, day := range payload.Daily {
		entry, err := newDailyWeather(day, tz)
		if err != nil {
			return nil, fmt.Errorf("daily[%d]: %w", i, err)
		}
		report.Daily = append(report.Daily, entry)
	}

	for _, alert := range payload.Alerts {
		report.Alerts = append(report.Alerts, &WeatherAlert{
			Sender:      alert.SenderName,
			Event:       alert.Event,
			Start:       fromUnix(alert.Start, tz),
			End:         fromUnix(alert.End, tz),
			Description: alert.Description,
		})
	}

	report.Current.HighTemperature = report.Daily[0].Temperature.High
	report.Current.LowTemperature = report.Daily[0].Temperature.Low

	return report, nil
}

func newWeather(dt int64, pressure, humidity int, dewPoint float64, clouds int,
	windSpeed, windDeg float64, conditions []ports.ConditionPayload, tz *time.Location) (Weather, error) {
	if len(conditions) == 0 {
		return Weather{}, errors.NewExternalAPIError("malformed forecast: missing weather condition", nil)
	}
	condition := conditions[0]

	return Weather{
		DateTime:      fromUnix(dt, tz),
		Pressure:      pressure,
		Humidity:      humidity,
		DewPoint:      dewPoint,
		Clouds:        clouds,
		WindSpeed:     int(windSpeed),
		WindDirection: WindDirection(windDeg),
		Condition: WeatherCondition{
			ID:          condition.ID,
			Category:    condition.Main,
			Description: condition.Description,
			Icon:        condition.Icon,
		},
	}, nil
}

func newCurrentWeather(p ports.CurrentPayload, tz *time.Location) (*CurrentWeather, error) {
	base, err := newWeather(p.Dt, p.Pressure, p.Humidity, p.DewPoint, p.Clouds, p.WindSpeed, p.WindDeg, p.Weather, tz)
	if err != nil {
		return nil, fmt.Errorf("current: %w", err)
	}

	return &CurrentWeather{
		Weather:     base,
		Temperature: roundTemperature(p.Temp),
		FeelsLike:   p.FeelsLike,
		Sunrise:     fromUnix(p.Sunrise, tz),
		Sunset:      fromUnix(p.Sunset, tz),
		Visibility:  p.Visibility,
	}, nil
}

func newHourlyWeather(p ports.HourlyPayload, tz *time.Location) (*HourlyWeather, error) {
	base, err := newWeather(p.Dt, p.Pressure, p.Humidity, p.DewPoint, p.Clouds, p.WindSpeed, p.WindDeg, p.Weather, tz)
	if err != nil {
		return nil, err
	}

	return &HourlyWeather{
		Weather:               base,
		Temperature:           roundTemperature(p.Temp),
		FeelsLike:             p.FeelsLike,
		ChanceOfPrecipitation: chanceOfPrecipitation(p.Pop),
	}, nil
}

func newDailyWeather(p ports.DailyPayload, tz *time.Location) (*DailyWeather, error) {
	base, err := newWeather(p.Dt, p.Pressure, p.Humidity, p.DewPoint, p.Clouds, p.WindSpeed, p.WindDeg, p.Weather, tz)
	if err != nil {
		return nil, err
	}

	return &DailyWeather{
		Weather: base,
		Temperature: DailyTemperature{
			DailyFeelsLike: newDailyFeelsLike(p.Temp.DailyFeelsLikePayload),
			Low:            roundTemperature(p.Temp.Min),
			High:           roundTemperature(p.Temp.Max),
		},
		FeelsLike:             newDailyFeelsLike(p.FeelsLike),
		Sunrise:               fromUnix(p.Sunrise, tz),
		Sunset:                fromUnix(p.Sunset, tz),
		ChanceOfPrecipitation: chanceOfPrecipitation(p.Pop),
	}, nil
}

func newDailyFeelsLike(p ports.DailyFeelsLikePayload) DailyFeelsLike {
	return DailyFeelsLike{
		Day:     roundTemperature(p.Day),
		Night:   roundTemperature(p.Night),
		Evening: roundTemperature(p.Eve),
		Morning: roundTemperature(p.Morn),
	}
}

// Halves round to the even neighbour, so 20.5 speaks as 20 and 21.5 as 22.
func roundTemperature(value float64) int {
	return int(math.RoundToEven(value))
}

func chanceOfPrecipitation(pop float64) int {
	return int(pop * 100)
}

func fromUnix(ts int64, tz *time.Location) time.Time {
	return time.Unix(ts, 0).In(tz)
}
