package weather

import (
	"fmt"
	"sort"
	"strings"

	"weatherdialog.app/internal/core/dialog"
	"weatherdialog.app/internal/core/intent"
	"weatherdialog.app/internal/ports"
)

// Intent names understood by Handle
const (
	IntentCurrent       = "current"
	IntentHour          = "hour"
	IntentDay           = "day"
	IntentDays          = "days"
	IntentWeekend       = "weekend"
	IntentWeek          = "week"
	IntentTemperature   = "temperature"
	IntentCondition     = "condition"
	IntentWind          = "wind"
	IntentHumidity      = "humidity"
	IntentSunrise       = "sunrise"
	IntentSunset        = "sunset"
	IntentPrecipitation = "precipitation"
)

// DefaultForecastDays is how many days a multi-day forecast covers when the
// request does not say
const DefaultForecastDays = 3

// WeekLength is the number of days a week summary looks at
const WeekLength = 7

// Response is the ordered list of dialogs answering one request
type Response struct {
	Intent  string          `json:"intent"`
	Dialogs []dialog.Dialog `json:"dialogs"`
}

// CacheKey identifies a provider response in the forecast cache
func CacheKey(query ports.ForecastQuery) string {
	return fmt.Sprintf("forecast:%s:%.4f:%.4f:%s",
		query.MeasurementSystem, query.Latitude, query.Longitude, query.Language)
}

// validateRequest checks the parts of a request that do not need a lookup
func validateRequest(name string, req intent.Request) error {
	if req.Days < 0 {
		return fmt.Errorf("days cannot be negative")
	}
	if req.Timeframe != "" && !req.Timeframe.IsValid() {
		return fmt.Errorf("unknown timeframe %q", req.Timeframe)
	}
	if name == IntentCondition {
		if _, ok := dialog.RequestedCondition(req.Aspect); !ok {
			return fmt.Errorf("unknown condition %q", req.Aspect)
		}
	}
	if len(strings.TrimSpace(req.Utterance)) > 1000 {
		return fmt.Errorf("utterance too long")
	}
	return nil
}

// sortedIntents lists the keys of a handler table
func sortedIntents[T any](handlers map[string]T) []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
