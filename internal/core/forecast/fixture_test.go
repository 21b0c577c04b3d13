package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"weatherdialog.app/internal/ports"
)

const chicago = "America/Chicago"

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	tz, err := time.LoadLocation(name)
	require.NoError(t, err)
	return tz
}

func condition(main string) []ports.ConditionPayload {
	return []ports.ConditionPayload{{ID: 800, Main: main, Description: main + " sky", Icon: "01d"}}
}

// buildPayload returns a one call payload whose current time is now, with
// hourly entries on the hour from now and daily entries at noon from today.
func buildPayload(now time.Time, hours, days int) *ports.ForecastPayload {
	payload := &ports.ForecastPayload{
		Timezone: now.Location().String(),
		Current: ports.CurrentPayload{
			Dt:        now.Unix(),
			Sunrise:   time.Date(now.Year(), now.Month(), now.Day(), 6, 30, 0, 0, now.Location()).Unix(),
			Sunset:    time.Date(now.Year(), now.Month(), now.Day(), 18, 15, 0, 0, now.Location()).Unix(),
			Temp:      20.5,
			FeelsLike: 19.2,
			Humidity:  60,
			WindSpeed: 7.9,
			WindDeg:   350,
			Weather:   condition("Clear"),
		},
	}

	startHour := now.Truncate(time.Hour)
	for i := 0; i < hours; i++ {
		payload.Hourly = append(payload.Hourly, ports.HourlyPayload{
			Dt:        startHour.Add(time.Duration(i) * time.Hour).Unix(),
			Temp:      float64(10 + i),
			Humidity:  50,
			WindSpeed: 3,
			WindDeg:   90,
			Weather:   condition("Clouds"),
			Pop:       0,
		})
	}

	for i := 0; i < days; i++ {
		noon := time.Date(now.Year(), now.Month(), now.Day()+i, 12, 0, 0, 0, now.Location())
		payload.Daily = append(payload.Daily, ports.DailyPayload{
			Dt:      noon.Unix(),
			Sunrise: noon.Add(-5*time.Hour - 30*time.Minute).Unix(),
			Sunset:  noon.Add(6*time.Hour + 15*time.Minute).Unix(),
			Temp: ports.DailyTemperaturePayload{
				DailyFeelsLikePayload: ports.DailyFeelsLikePayload{Day: 15, Night: 5, Eve: 10, Morn: 7},
				Min:                   float64(i),
				Max:                   float64(20 + i),
			},
			Humidity:  40 + i,
			WindSpeed: 4,
			WindDeg:   180,
			Weather:   condition("Rain"),
			Pop:       0,
		})
	}
	return payload
}

func buildReport(t *testing.T, now time.Time, hours, days int) *WeatherReport {
	t.Helper()
	report, err := NewWeatherReport(buildPayload(now, hours, days))
	require.NoError(t, err)
	return report
}
