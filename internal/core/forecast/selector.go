package forecast

import (
	"fmt"
	"time"

	"weatherdialog.app/pkg/errors"
)

// MaxForecastDays is the furthest day ahead a request may ask about
const MaxForecastDays = 7

// PrecipitationThreshold is the chance, in percent, above which a period
// counts as wet.
const PrecipitationThreshold = 30

const day = 24 * time.Hour

// WeatherForIntent returns the entry a request is about: the hour or the day
// containing requested, or the current conditions.
func (r *WeatherReport) WeatherForIntent(timeframe Timeframe, anchor, requested time.Time) (Forecast, error) {
	switch timeframe {
	case TimeframeHourly:
		return r.ForecastForHour(anchor, requested)
	case TimeframeDaily:
		return r.ForecastForDate(anchor, requested)
	default:
		return r.Current, nil
	}
}

// ForecastForDate returns the daily entry for requested. Today is daily[0];
// any other day is indexed by whole days elapsed since anchor, plus one.
func (r *WeatherReport) ForecastForDate(anchor, requested time.Time) (*DailyWeather, error) {
	if SameDate(requested, anchor) {
		return r.Daily[0], nil
	}

	index := int(requested.Sub(anchor)/day) + 1
	if index < 0 {
		return nil, errors.NewHistoricalDateError("forecast requested for " + requested.Format(time.DateOnly))
	}
	if index >= len(r.Daily) {
		return nil, errors.NewHorizonExceededError(
			fmt.Sprintf("no daily forecast at index %d", index), requested.Weekday().String())
	}
	return r.Daily[index], nil
}

// ForecastForHour returns the hourly entry for requested. index 0 is the
// current hour.
func (r *WeatherReport) ForecastForHour(anchor, requested time.Time) (*HourlyWeather, error) {
	index := int(requested.Sub(anchor)/time.Hour) + 1
	if index < 0 {
		return nil, errors.NewHistoricalDateError("forecast requested for " + requested.Format(time.DateTime))
	}
	if index >= len(r.Hourly) {
		return nil, errors.NewHorizonExceededError(
			fmt.Sprintf("no hourly forecast at index %d", index), requested.Weekday().String())
	}
	return r.Hourly[index], nil
}

// ForecastForMultipleDays returns the n days following today
func (r *WeatherReport) ForecastForMultipleDays(n int) ([]*DailyWeather, error) {
	if n < 1 {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid number of days: %d", n))
	}
	if n > MaxForecastDays {
		return nil, errors.NewHorizonExceededError(
			fmt.Sprintf("only %d days of forecast available", MaxForecastDays), fmt.Sprintf("%d days", n))
	}
	if n+1 > len(r.Daily) {
		return nil, errors.NewHorizonExceededError(
			fmt.Sprintf("report has %d daily entries", len(r.Daily)), fmt.Sprintf("%d days", n))
	}
	return r.Daily[1 : n+1], nil
}

// WeekendForecast returns the Saturday and Sunday entries of the daily series
// in order.
func (r *WeatherReport) WeekendForecast() []*DailyWeather {
	var weekend []*DailyWeather
	for _, d := range r.Daily {
		switch d.DateTime.Weekday() {
		case time.Saturday, time.Sunday:
			weekend = append(weekend, d)
		}
	}
	return weekend
}

// NextPrecipitation finds the next onset of precipitation after anchor.
//
// Hours are scanned first, up to the end of the anchor's date. An hour that is
// already wet is skipped until a dry hour has been seen, so rain that is
// falling now is not reported as upcoming. When no hour qualifies the days
// after today are scanned. The returned entry is nil when nothing is expected.
func (r *WeatherReport) NextPrecipitation(anchor time.Time) (Forecast, Timeframe) {
	precipitating := true
	for _, h := range r.Hourly {
		if DateAfter(h.DateTime, anchor) {
			break
		}
		if h.ChanceOfPrecipitation > PrecipitationThreshold {
			if !precipitating {
				return h, TimeframeHourly
			}
		} else {
			precipitating = false
		}
	}

	for _, d := range r.Daily {
		if SameDate(d.DateTime, anchor) {
			continue
		}
		if d.ChanceOfPrecipitation > PrecipitationThreshold {
			return d, TimeframeDaily
		}
	}
	return nil, TimeframeDaily
}

// SameDate reports whether a and b fall on the same calendar date, each read
// in its own location.
func SameDate(a, b time.Time) bool {
	return dateOf(a).Equal(dateOf(b))
}

// DateAfter reports whether a's calendar date is later than b's
func DateAfter(a, b time.Time) bool {
	return dateOf(a).After(dateOf(b))
}

// DateBefore reports whether a's calendar date is earlier than b's
func DateBefore(a, b time.Time) bool {
	return dateOf(a).Before(dateOf(b))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
