package dialog

import "strings"

// Scope is the forecast series a dialog speaks about
type Scope int

const (
	ScopeCurrent Scope = iota
	ScopeHourly
	ScopeDaily
)

// Aspect is what about the weather is being said
type Aspect int

const (
	AspectWeather Aspect = iota
	AspectTemperature
	AspectHighLow
	AspectWind
	AspectHumidity
	AspectCondition
	AspectPrecipitationNext
	AspectPrecipitationNone
	AspectSunrise
	AspectSunset
)

// Qualifier narrows a temperature to the day's high or low
type Qualifier int

const (
	QualifierNone Qualifier = iota
	QualifierHigh
	QualifierLow
)

// ParseQualifier reads "high" or "low"; anything else is no qualifier
func ParseQualifier(word string) Qualifier {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case "high":
		return QualifierHigh
	case "low":
		return QualifierLow
	default:
		return QualifierNone
	}
}

// Temporal places a current sunrise or sunset before or after now
type Temporal int

const (
	TemporalNone Temporal = iota
	TemporalFuture
	TemporalPast
)

// Placement says whether the dialog names a place
type Placement int

const (
	PlacementNone Placement = iota
	PlacementLocal
	PlacementLocation
)

// Key identifies one response template. Build one with the composer and
// turn it into the template name with Render.
type Key struct {
	Scope        Scope
	Aspect       Aspect
	Qualifier    Qualifier
	WindStrength string
	Condition    Condition
	Match        Match
	Temporal     Temporal
	Placement    Placement
}

// Naming tables. Render only joins what these return.
var (
	scopeNames = map[Scope]string{
		ScopeCurrent: "current",
		ScopeHourly:  "hourly",
		ScopeDaily:   "daily",
	}

	aspectNames = map[Aspect]string{
		AspectWeather:           "weather",
		AspectTemperature:       "temperature",
		AspectHighLow:           "temperature.high.low",
		AspectWind:              "wind",
		AspectHumidity:          "humidity",
		AspectCondition:         "",
		AspectPrecipitationNext: "precipitation.next",
		AspectPrecipitationNone: "precipitation.next.none",
		AspectSunrise:           "sunrise",
		AspectSunset:            "sunset",
	}

	qualifierNames = map[Qualifier]string{
		QualifierNone: "",
		QualifierHigh: "high",
		QualifierLow:  "low",
	}

	temporalNames = map[Temporal]string{
		TemporalNone:   "",
		TemporalFuture: "future",
		TemporalPast:   "past",
	}

	placementNames = map[Placement]string{
		PlacementNone:     "",
		PlacementLocal:    "local",
		PlacementLocation: "location",
	}
)

// matchName renders the condition part of a condition key
func matchName(match Match, condition Condition) string {
	switch match {
	case MatchExpected:
		return "condition.expected"
	case MatchAlternative:
		return condition.String() + ".alternative"
	case MatchNotExpected:
		return condition.String() + ".not.expected"
	default:
		return ""
	}
}

// Render returns the template name, e.g. "daily.temperature.high.location"
func (k Key) Render() string {
	parts := []string{scopeNames[k.Scope]}

	switch k.Aspect {
	case AspectCondition:
		parts = append(parts, matchName(k.Match, k.Condition))
	case AspectWind:
		parts = append(parts, aspectNames[k.Aspect], k.WindStrength)
	case AspectTemperature:
		parts = append(parts, aspectNames[k.Aspect], qualifierNames[k.Qualifier])
	case AspectSunrise, AspectSunset:
		parts = append(parts, aspectNames[k.Aspect], temporalNames[k.Temporal])
	default:
		parts = append(parts, aspectNames[k.Aspect])
	}

	parts = append(parts, placementNames[k.Placement])
	return joinNonEmpty(parts)
}

func joinNonEmpty(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}
