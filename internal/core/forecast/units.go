package forecast

import "strings"

// Measurement systems understood by the provider
const (
	Metric   = "metric"
	Imperial = "imperial"
)

// Temperature units
const (
	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"
)

// Speed units, as spoken
const (
	MetersPerSecond = "meters per second"
	MilesPerHour    = "miles per hour"
)

// Units is the resolved set of units one request is answered in
type Units struct {
	MeasurementSystem string
	Temperature       string
	Speed             string
}

// ResolveUnits picks the units for a request. An explicit request unit wins,
// then the device temperature setting, then the device measurement system.
// The provider is queried in the system matching the temperature unit, and
// speeds come back in that system's unit.
func ResolveUnits(requestUnit, settingUnit, systemUnit string) Units {
	temperature := Fahrenheit
	if strings.EqualFold(systemUnit, Metric) {
		temperature = Celsius
	}
	switch strings.ToLower(settingUnit) {
	case Celsius, Fahrenheit:
		temperature = strings.ToLower(settingUnit)
	}
	switch strings.ToLower(requestUnit) {
	case Celsius, Fahrenheit:
		temperature = strings.ToLower(requestUnit)
	}

	if temperature == Celsius {
		return Units{MeasurementSystem: Metric, Temperature: Celsius, Speed: MetersPerSecond}
	}
	return Units{MeasurementSystem: Imperial, Temperature: Fahrenheit, Speed: MilesPerHour}
}
