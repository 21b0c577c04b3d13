package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherdialog.app/pkg/errors"
)

func TestForecastForDate(t *testing.T) {
	tz := mustLocation(t, chicago)
	anchor := time.Date(2024, 3, 1, 8, 0, 0, 0, tz)
	report := buildReport(t, anchor, 48, 8)

	t.Run("TodayIsFirstEntry", func(t *testing.T) {
		got, err := report.ForecastForDate(anchor, anchor)
		require.NoError(t, err)
		assert.Same(t, report.Daily[0], got)
	})

	t.Run("LaterToday", func(t *testing.T) {
		got, err := report.ForecastForDate(anchor, anchor.Add(10*time.Hour))
		require.NoError(t, err)
		assert.Same(t, report.Daily[0], got)
	})

	t.Run("Tomorrow", func(t *testing.T) {
		tomorrow := time.Date(2024, 3, 2, 0, 0, 0, 0, tz)
		got, err := report.ForecastForDate(anchor, tomorrow)
		require.NoError(t, err)
		assert.Same(t, report.Daily[1], got)
		assert.Equal(t, time.Saturday, got.DateTime.Weekday())
	})

	t.Run("SevenDaysOut", func(t *testing.T) {
		got, err := report.ForecastForDate(anchor, time.Date(2024, 3, 8, 0, 0, 0, 0, tz))
		require.NoError(t, err)
		assert.Same(t, report.Daily[7], got)
	})

	t.Run("BeyondSeries", func(t *testing.T) {
		short := buildReport(t, anchor, 48, 3)
		_, err := short.ForecastForDate(anchor, time.Date(2024, 3, 5, 0, 0, 0, 0, tz))

		require.Error(t, err)
		assert.True(t, errors.IsHorizonExceededError(err))
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Tuesday", appErr.Details["day"])
	})
}

func TestForecastForHour(t *testing.T) {
	tz := mustLocation(t, chicago)
	anchor := time.Date(2024, 3, 1, 8, 20, 0, 0, tz)
	report := buildReport(t, anchor, 48, 8)

	tests := []struct {
		name      string
		requested time.Time
		index     int
	}{
		{"InAQuarterHour", anchor.Add(15 * time.Minute), 1},
		{"InOneHour", anchor.Add(time.Hour), 2},
		{"InThreeAndAHalfHours", anchor.Add(3*time.Hour + 30*time.Minute), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := report.ForecastForHour(anchor, tt.requested)
			require.NoError(t, err)
			assert.Same(t, report.Hourly[tt.index], got)
		})
	}

	t.Run("BeyondSeries", func(t *testing.T) {
		_, err := report.ForecastForHour(anchor, anchor.Add(60*time.Hour))
		assert.True(t, errors.IsHorizonExceededError(err))
	})

	t.Run("InThePast", func(t *testing.T) {
		_, err := report.ForecastForHour(anchor, anchor.Add(-3*time.Hour))
		assert.True(t, errors.IsHistoricalDateError(err))
	})
}

func TestForecastForMultipleDays(t *testing.T) {
	tz := mustLocation(t, chicago)
	anchor := time.Date(2024, 3, 1, 8, 0, 0, 0, tz)
	report := buildReport(t, anchor, 48, 8)

	days, err := report.ForecastForMultipleDays(7)
	require.NoError(t, err)
	assert.Equal(t, report.Daily[1:8], days)

	days, err = report.ForecastForMultipleDays(3)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Same(t, report.Daily[1], days[0])

	_, err = report.ForecastForMultipleDays(8)
	assert.True(t, errors.IsHorizonExceededError(err))

	_, err = report.ForecastForMultipleDays(0)
	assert.True(t, errors.IsValidationError(err))

	short := buildReport(t, anchor, 48, 4)
	_, err = short.ForecastForMultipleDays(5)
	assert.True(t, errors.IsHorizonExceededError(err))
}

func TestWeekendForecast(t *testing.T) {
	tz := mustLocation(t, chicago)
	// Friday
	anchor := time.Date(2024, 3, 1, 8, 0, 0, 0, tz)
	report := buildReport(t, anchor, 48, 8)

	weekend := report.WeekendForecast()

	require.Len(t, weekend, 2)
	assert.Equal(t, time.Saturday, weekend[0].DateTime.Weekday())
	assert.Equal(t, time.Sunday, weekend[1].DateTime.Weekday())
	assert.Same(t, report.Daily[1], weekend[0])
}

func TestWeatherForIntent(t *testing.T) {
	tz := mustLocation(t, chicago)
	anchor := time.Date(2024, 3, 1, 8, 0, 0, 0, tz)
	report := buildReport(t, anchor, 48, 8)

	current, err := report.WeatherForIntent(TimeframeCurrent, anchor, anchor)
	require.NoError(t, err)
	assert.Same(t, report.Current, current)

	hourly, err := report.WeatherForIntent(TimeframeHourly, anchor, anchor.Add(2*time.Hour))
	require.NoError(t, err)
	assert.IsType(t, &HourlyWeather{}, hourly)

	daily, err := report.WeatherForIntent(TimeframeDaily, anchor, anchor)
	require.NoError(t, err)
	assert.Same(t, report.Daily[0], daily)
}

func TestNextPrecipitation(t *testing.T) {
	tz := mustLocation(t, chicago)
	anchor := time.Date(2024, 3, 1, 8, 0, 0, 0, tz)

	t.Run("SkipsPrecipitationAlreadyFalling", func(t *testing.T) {
		payload := buildPayload(anchor, 48, 8)
		for i, pop := range []float64{0.4, 0.4, 0.1, 0.35} {
			payload.Hourly[i].Pop = pop
		}
		report, err := NewWeatherReport(payload)
		require.NoError(t, err)

		got, timeframe := report.NextPrecipitation(anchor)

		assert.Equal(t, TimeframeHourly, timeframe)
		assert.Same(t, report.Hourly[3], got)
	})

	t.Run("HourlyScanStopsAtEndOfDay", func(t *testing.T) {
		payload := buildPayload(anchor, 48, 8)
		// 16 hours from 08:00 is midnight of the next day
		payload.Hourly[16].Pop = 0.9
		payload.Hourly[20].Pop = 0.9
		payload.Daily[2].Pop = 0.6
		report, err := NewWeatherReport(payload)
		require.NoError(t, err)

		got, timeframe := report.NextPrecipitation(anchor)

		assert.Equal(t, TimeframeDaily, timeframe)
		assert.Same(t, report.Daily[2], got)
	})

	t.Run("DailyScanSkipsToday", func(t *testing.T) {
		payload := buildPayload(anchor, 48, 8)
		payload.Daily[0].Pop = 0.9
		payload.Daily[4].Pop = 0.31
		report, err := NewWeatherReport(payload)
		require.NoError(t, err)

		got, timeframe := report.NextPrecipitation(anchor)

		assert.Equal(t, TimeframeDaily, timeframe)
		assert.Same(t, report.Daily[4], got)
	})

	t.Run("NothingExpected", func(t *testing.T) {
		report := buildReport(t, anchor, 48, 8)

		got, timeframe := report.NextPrecipitation(anchor)

		assert.Nil(t, got)
		assert.Equal(t, TimeframeDaily, timeframe)
	})

	t.Run("NeverReportsAnHourAfterToday", func(t *testing.T) {
		payload := buildPayload(anchor, 48, 8)
		for i := range payload.Hourly {
			payload.Hourly[i].Pop = float64(i%2) * 0.8
		}
		report, err := NewWeatherReport(payload)
		require.NoError(t, err)

		got, timeframe := report.NextPrecipitation(anchor)
		if timeframe == TimeframeHourly {
			require.NotNil(t, got)
			assert.False(t, DateAfter(got.Common().DateTime, anchor))
		}
	})
}

func TestDateHelpers(t *testing.T) {
	tz := mustLocation(t, chicago)
	a := time.Date(2024, 3, 1, 23, 59, 0, 0, tz)
	b := time.Date(2024, 3, 2, 0, 1, 0, 0, tz)

	assert.True(t, SameDate(a, a.Add(-23*time.Hour)))
	assert.False(t, SameDate(a, b))
	assert.True(t, DateAfter(b, a))
	assert.True(t, DateBefore(a, b))
	assert.False(t, DateBefore(a, a))
}
