// Package intent resolves where and when a weather request is about.
package intent

import (
	"regexp"
	"strings"

	"weatherdialog.app/internal/core/forecast"
)

// Request is one parsed weather question
type Request struct {
	Utterance string
	// Location is the place named in the utterance, empty for the device location
	Location string
	Language string
	// Unit is an explicit temperature unit asked for, if any
	Unit string
	// Aspect qualifies the question, e.g. "high" for a temperature or "rain"
	// for a condition.
	Aspect    string
	Timeframe forecast.Timeframe
	// Days is the number of days asked for by a multi-day request
	Days int
}

// HasLocation reports whether the request names a place
func (r Request) HasLocation() bool {
	return strings.TrimSpace(r.Location) != ""
}

var (
	hourlyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\blater\b`),
		regexp.MustCompile(`\btonight\b`),
		regexp.MustCompile(`\bthis (morning|afternoon|evening)\b`),
		regexp.MustCompile(`\bnext hour\b`),
		regexp.MustCompile(`\bin (an|one|a few|\d+) hours?\b`),
		regexp.MustCompile(`\b\d{1,2}(:\d{2})? ?(am|pm|a\.m\.|p\.m\.)(\W|$)`),
		regexp.MustCompile(`\b\d{1,2} o'?clock\b`),
		regexp.MustCompile(`\bat (noon|midnight|\d{1,2}(:\d{2})?)\b`),
	}

	dailyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\btomorrow\b`),
		regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
		regexp.MustCompile(`\bin (a|one|two|three|four|five|six|seven|\d+) days?\b`),
		regexp.MustCompile(`\bnext week\b`),
		regexp.MustCompile(`\bthis (week|weekend)\b`),
	}
)

// DetermineTimeframe picks the series an utterance should be answered from.
// Relative time words select the hourly forecast; relative day words that do
// not mean today select the daily forecast; anything else is current.
func DetermineTimeframe(utterance string) forecast.Timeframe {
	text := strings.ToLower(utterance)

	for _, pattern := range hourlyPatterns {
		if pattern.MatchString(text) {
			return forecast.TimeframeHourly
		}
	}
	for _, pattern := range dailyPatterns {
		if pattern.MatchString(text) {
			return forecast.TimeframeDaily
		}
	}
	return forecast.TimeframeCurrent
}

// ResolveTimeframe returns the explicit timeframe of the request, falling back to
// the one implied by its utterance.
func (r Request) ResolveTimeframe() forecast.Timeframe {
	if r.Timeframe.IsValid() {
		return r.Timeframe
	}
	return DetermineTimeframe(r.Utterance)
}
