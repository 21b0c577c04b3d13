package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_Render(t *testing.T) {
	tests := []struct {
		key      Key
		expected string
	}{
		{Key{Scope: ScopeCurrent, Aspect: AspectWeather, Placement: PlacementLocal}, "current.weather.local"},
		{Key{Scope: ScopeCurrent, Aspect: AspectHighLow}, "current.temperature.high.low"},
		{Key{Scope: ScopeDaily, Aspect: AspectTemperature, Qualifier: QualifierHigh, Placement: PlacementLocation}, "daily.temperature.high.location"},
		{Key{Scope: ScopeCurrent, Aspect: AspectTemperature, Qualifier: QualifierLow, Placement: PlacementLocal}, "current.temperature.low.local"},
		{Key{Scope: ScopeHourly, Aspect: AspectTemperature, Placement: PlacementLocal}, "hourly.temperature.local"},
		{Key{Scope: ScopeHourly, Aspect: AspectWind, WindStrength: "strong", Placement: PlacementLocal}, "hourly.wind.strong.local"},
		{Key{Scope: ScopeDaily, Aspect: AspectHumidity, Placement: PlacementLocation}, "daily.humidity.location"},
		{Key{Scope: ScopeCurrent, Aspect: AspectCondition, Condition: ConditionRain, Match: MatchExpected, Placement: PlacementLocal}, "current.condition.expected.local"},
		{Key{Scope: ScopeDaily, Aspect: AspectCondition, Condition: ConditionSnow, Match: MatchAlternative, Placement: PlacementLocal}, "daily.snow.alternative.local"},
		{Key{Scope: ScopeHourly, Aspect: AspectCondition, Condition: ConditionFog, Match: MatchNotExpected, Placement: PlacementLocation}, "hourly.fog.not.expected.location"},
		{Key{Scope: ScopeDaily, Aspect: AspectPrecipitationNone, Placement: PlacementLocal}, "daily.precipitation.next.none.local"},
		{Key{Scope: ScopeHourly, Aspect: AspectPrecipitationNext, Placement: PlacementLocal}, "hourly.precipitation.next.local"},
		{Key{Scope: ScopeCurrent, Aspect: AspectSunrise, Temporal: TemporalFuture, Placement: PlacementLocal}, "current.sunrise.future.local"},
		{Key{Scope: ScopeCurrent, Aspect: AspectSunset, Temporal: TemporalPast, Placement: PlacementLocation}, "current.sunset.past.location"},
		{Key{Scope: ScopeDaily, Aspect: AspectSunset, Placement: PlacementLocal}, "daily.sunset.local"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.key.Render())
			assert.Equal(t, tt.key.Render(), tt.key.Render(), "rendering is deterministic")
		})
	}
}

func TestNamingTables_Complete(t *testing.T) {
	for aspect := AspectWeather; aspect <= AspectSunset; aspect++ {
		_, ok := aspectNames[aspect]
		assert.True(t, ok, "aspect %d has no name", aspect)
	}
	for scope := ScopeCurrent; scope <= ScopeDaily; scope++ {
		assert.NotEmpty(t, scopeNames[scope])
	}
	for placement := PlacementLocal; placement <= PlacementLocation; placement++ {
		assert.NotEmpty(t, placementNames[placement])
	}
	assert.Equal(t, "high", qualifierNames[QualifierHigh])
	assert.Equal(t, "low", qualifierNames[QualifierLow])
	assert.Equal(t, "future", temporalNames[TemporalFuture])
	assert.Equal(t, "past", temporalNames[TemporalPast])
}

func TestParseQualifier(t *testing.T) {
	assert.Equal(t, QualifierHigh, ParseQualifier("High"))
	assert.Equal(t, QualifierLow, ParseQualifier("low"))
	assert.Equal(t, QualifierNone, ParseQualifier(""))
	assert.Equal(t, QualifierNone, ParseQualifier("warm"))
}

func TestMatchCondition(t *testing.T) {
	tests := []struct {
		name      string
		requested Condition
		actual    Condition
		expected  Match
	}{
		{"RainWhenDrizzle", ConditionRain, ConditionDrizzle, MatchExpected},
		{"RainWhenSnow", ConditionRain, ConditionSnow, MatchAlternative},
		{"RainWhenClear", ConditionRain, ConditionClear, MatchNotExpected},
		{"FogWhenMist", ConditionFog, ConditionMist, MatchExpected},
		{"ClearWhenClouds", ConditionClear, ConditionClouds, MatchAlternative},
		{"StormWhenTornado", ConditionThunderstorm, ConditionTornado, MatchExpected},
		{"SnowWhenUnknown", ConditionSnow, ConditionUnknown, MatchNotExpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchCondition(tt.requested, tt.actual))
		})
	}
}

func TestParseCondition(t *testing.T) {
	assert.Equal(t, ConditionThunderstorm, ParseCondition("Thunderstorm"))
	assert.Equal(t, ConditionClouds, ParseCondition("clouds"))
	assert.Equal(t, ConditionUnknown, ParseCondition("Meteors"))
	assert.Equal(t, "unknown", Condition(99).String())
}

func TestRequestedCondition(t *testing.T) {
	c, ok := RequestedCondition("Cloudy")
	assert.True(t, ok)
	assert.Equal(t, ConditionClouds, c)

	c, ok = RequestedCondition("storm")
	assert.True(t, ok)
	assert.Equal(t, ConditionThunderstorm, c)

	_, ok = RequestedCondition("smoke")
	assert.False(t, ok)
}
