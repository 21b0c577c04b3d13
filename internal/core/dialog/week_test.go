package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherdialog.app/internal/core/forecast"
)

func week(categories ...string) []*forecast.DailyWeather {
	days := make([]*forecast.DailyWeather, len(categories))
	for i, category := range categories {
		days[i] = dailyWeather(i, category)
	}
	return days
}

func names(dialogs []Dialog) []string {
	out := make([]string, len(dialogs))
	for i, d := range dialogs {
		out[i] = d.Name
	}
	return out
}

func TestComposer_WeekSummary_Mostly(t *testing.T) {
	c := localComposer()

	dialogs := c.WeekSummary(week("Rain", "Rain", "Clear", "Rain", "Clouds", "Clouds", "Rain"))

	assert.Equal(t, []string{
		"this.week",
		"weekly.conditions.mostly.one",
		"weekly.condition.on.day",
		"weekly.conditions.seq.period",
		"weekly.temp.range",
	}, names(dialogs))
	assert.Equal(t, "rain", dialogs[1].Data["condition"])
	assert.Equal(t, "light Clear", dialogs[2].Data["condition"])
	assert.Equal(t, "Sunday", dialogs[2].Data["day"])
	assert.Equal(t, "clouds", dialogs[3].Data["condition"])
	assert.Equal(t, "Tuesday", dialogs[3].Data["from"])
	assert.Equal(t, "Wednesday", dialogs[3].Data["to"])

	assert.Equal(t, map[string]interface{}{
		"low_min":  30,
		"low_max":  36,
		"high_min": 50,
		"high_max": 56,
	}, dialogs[4].Data)
}

func TestComposer_WeekSummary_Sequences(t *testing.T) {
	c := localComposer()

	dialogs := c.WeekSummary(week("Snow", "Snow", "Clear", "Rain", "Snow", "Clouds", "Fog"))

	require.Len(t, dialogs, 8)
	assert.Equal(t, "weekly.conditions.seq.start", dialogs[1].Name)
	assert.Equal(t, "snow", dialogs[1].Data["condition"])
	assert.Equal(t, "weekly.conditions.seq.period", dialogs[2].Name)
	assert.Equal(t, "Today", dialogs[2].Data["from"])
	assert.Equal(t, "Saturday", dialogs[2].Data["to"])
	for _, d := range dialogs[3:7] {
		assert.Equal(t, "weekly.condition.on.day", d.Name)
	}
}

func TestComposer_WeekSummary_SomeDays(t *testing.T) {
	c := localComposer()

	dialogs := c.WeekSummary(week("Rain", "Clear", "Rain", "Clouds", "Rain", "Snow", "Fog"))

	assert.Equal(t, "weekly.conditions.some.days", dialogs[1].Name)
	assert.Equal(t, "rain", dialogs[1].Data["condition"])
}

func TestComposer_WeekSummary_NotFromToday(t *testing.T) {
	c := localComposer()

	dialogs := c.WeekSummary(week("Clear", "Clear")[1:])

	assert.Equal(t, "from.day", dialogs[0].Name)
	assert.Equal(t, "Saturday", dialogs[0].Data["day"])
	assert.Empty(t, c.WeekSummary(nil))
}

func TestSequences(t *testing.T) {
	assert.Equal(t, [][]int{{0, 1}, {3, 4, 5}}, sequences([]int{0, 1, 3, 4, 5}))
	assert.Nil(t, sequences([]int{0, 2, 4}))
	assert.Nil(t, sequences(nil))
}

func TestMostFrequent_FirstWinsTie(t *testing.T) {
	assert.Equal(t, "rain", mostFrequent([]string{"rain", "snow", "snow", "rain"}))
}
