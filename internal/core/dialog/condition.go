package dialog

import "strings"

// Condition is a provider condition category
type Condition int

const (
	ConditionUnknown Condition = iota
	ConditionClear
	ConditionClouds
	ConditionRain
	ConditionDrizzle
	ConditionSnow
	ConditionThunderstorm
	ConditionFog
	ConditionMist
	ConditionHaze
	ConditionSmoke
	ConditionDust
	ConditionSand
	ConditionAsh
	ConditionSquall
	ConditionTornado
)

var conditionNames = map[Condition]string{
	ConditionUnknown:      "unknown",
	ConditionClear:        "clear",
	ConditionClouds:       "clouds",
	ConditionRain:         "rain",
	ConditionDrizzle:      "drizzle",
	ConditionSnow:         "snow",
	ConditionThunderstorm: "thunderstorm",
	ConditionFog:          "fog",
	ConditionMist:         "mist",
	ConditionHaze:         "haze",
	ConditionSmoke:        "smoke",
	ConditionDust:         "dust",
	ConditionSand:         "sand",
	ConditionAsh:          "ash",
	ConditionSquall:       "squall",
	ConditionTornado:      "tornado",
}

// String returns the lower case category name used in dialog keys
func (c Condition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return conditionNames[ConditionUnknown]
}

// ParseCondition maps a provider category such as "Rain" to a Condition
func ParseCondition(category string) Condition {
	wanted := strings.ToLower(strings.TrimSpace(category))
	for condition, name := range conditionNames {
		if name == wanted {
			return condition
		}
	}
	return ConditionUnknown
}

// Words a request may use for the conditions that can be asked about
var requestedConditionWords = map[string]Condition{
	"rain":         ConditionRain,
	"raining":      ConditionRain,
	"umbrella":     ConditionRain,
	"snow":         ConditionSnow,
	"snowing":      ConditionSnow,
	"clear":        ConditionClear,
	"sunny":        ConditionClear,
	"clouds":       ConditionClouds,
	"cloudy":       ConditionClouds,
	"fog":          ConditionFog,
	"foggy":        ConditionFog,
	"storm":        ConditionThunderstorm,
	"stormy":       ConditionThunderstorm,
	"thunderstorm": ConditionThunderstorm,
}

// RequestedCondition parses the condition a question asks about. Only rain,
// snow, clear, clouds, fog and thunderstorm can be asked about.
func RequestedCondition(word string) (Condition, bool) {
	c, ok := requestedConditionWords[strings.ToLower(strings.TrimSpace(word))]
	return c, ok
}

type conditionVocabulary struct {
	matches      []Condition
	alternatives []Condition
}

// Categories that answer a question about a condition, and categories that
// are worth mentioning instead when the answer is no.
var conditionVocabularies = map[Condition]conditionVocabulary{
	ConditionRain: {
		matches:      []Condition{ConditionRain, ConditionDrizzle},
		alternatives: []Condition{ConditionSnow, ConditionThunderstorm},
	},
	ConditionSnow: {
		matches:      []Condition{ConditionSnow},
		alternatives: []Condition{ConditionRain, ConditionDrizzle},
	},
	ConditionClear: {
		matches:      []Condition{ConditionClear},
		alternatives: []Condition{ConditionClouds, ConditionFog, ConditionMist, ConditionHaze},
	},
	ConditionClouds: {
		matches:      []Condition{ConditionClouds},
		alternatives: []Condition{ConditionClear, ConditionFog, ConditionMist, ConditionHaze},
	},
	ConditionFog: {
		matches:      []Condition{ConditionFog, ConditionMist, ConditionHaze},
		alternatives: []Condition{ConditionClear, ConditionClouds, ConditionSmoke, ConditionDust, ConditionSand},
	},
	ConditionThunderstorm: {
		matches:      []Condition{ConditionThunderstorm, ConditionSquall, ConditionTornado},
		alternatives: []Condition{ConditionRain, ConditionDrizzle},
	},
}

// Match is how a forecast condition answers a question about a condition
type Match int

const (
	MatchNone Match = iota
	MatchExpected
	MatchAlternative
	MatchNotExpected
)

// MatchCondition decides whether actual answers a question about requested
func MatchCondition(requested, actual Condition) Match {
	vocabulary := conditionVocabularies[requested]
	if containsCondition(vocabulary.matches, actual) {
		return MatchExpected
	}
	if containsCondition(vocabulary.alternatives, actual) {
		return MatchAlternative
	}
	return MatchNotExpected
}

func containsCondition(set []Condition, c Condition) bool {
	for _, candidate := range set {
		if candidate == c {
			return true
		}
	}
	return false
}
