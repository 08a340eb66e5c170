package schema

import "fmt"

var (
	ErrInvalidLatitude  = fmt.Errorf("latitude must be within [-90, 90]")
	ErrInvalidLongitude = fmt.Errorf("longitude must be within [-180, 180]")
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinate ranges. NaN fails every comparison, so the
// checks are written to reject it.
func (l Location) Validate() error {
	if !(l.Latitude >= -90 && l.Latitude <= 90) {
		return ErrInvalidLatitude
	}
	if !(l.Longitude >= -180 && l.Longitude <= 180) {
		return ErrInvalidLongitude
	}
	return nil
}

// GeoJSON - mongo location format
type GeoJSON struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

// NewGeoJSONPoint returns a GeoJSON point. Mongo expects [longitude, latitude].
func NewGeoJSONPoint(l Location) *GeoJSON {
	return &GeoJSON{
		Type:        "Point",
		Coordinates: []float64{l.Longitude, l.Latitude},
	}
}

// Location converts a GeoJSON point back to a location
func (g *GeoJSON) Location() *Location {
	if g == nil || len(g.Coordinates) != 2 {
		return nil
	}
	return &Location{
		Latitude:  g.Coordinates[1],
		Longitude: g.Coordinates[0],
	}
}
