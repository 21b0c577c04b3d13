package ports

import "context"

// GeoLocation is the geocoder's answer for a place name. The zero value means
// "use the device configuration".
type GeoLocation struct {
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsZero reports whether no place was resolved
func (g GeoLocation) IsZero() bool {
	return g == GeoLocation{}
}

// Geocoder resolves a spoken place name. Implementations return a
// LocationNotFound error when the place is unknown.
type Geocoder interface {
	Geolocate(ctx context.Context, place string) (*GeoLocation, error)
}
