package forecast

// Wind strengths
const (
	WindLight    = "light"
	WindModerate = "moderate"
	WindStrong   = "strong"
)

type compassBucket struct {
	upperBound float64
	direction  string
}

// Ascending upper bounds; a bearing belongs to the first bucket it is below.
var windDirectionConversion = []compassBucket{
	{22.5, "north"},
	{67.5, "northeast"},
	{112.5, "east"},
	{157.5, "southeast"},
	{202.5, "south"},
	{247.5, "southwest"},
	{292.5, "west"},
	{337.5, "northwest"},
}

// WindDirection converts a compass bearing in degrees to one of eight named
// directions. Bearings at or past 337.5 wrap back to north. No modulo is
// applied to the input.
func WindDirection(degrees float64) string {
	for _, bucket := range windDirectionConversion {
		if degrees < bucket.upperBound {
			return bucket.direction
		}
	}
	return "north"
}

type windLimits struct {
	strong   int
	moderate int
}

// WindStrength classifies a wind speed given in speedUnit
func WindStrength(speed int, speedUnit string) string {
	limits := windLimits{strong: 9, moderate: 5}
	if speedUnit == MilesPerHour {
		limits = windLimits{strong: 20, moderate: 11}
	}

	switch {
	case speed >= limits.strong:
		return WindStrong
	case speed >= limits.moderate:
		return WindModerate
	default:
		return WindLight
	}
}

// WindStrength classifies this period's wind speed
func (w *Weather) WindStrength(speedUnit string) string {
	return WindStrength(w.WindSpeed, speedUnit)
}
