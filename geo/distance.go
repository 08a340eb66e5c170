package geo

import (
	"math"

	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// EarthRadiusKm is the mean earth radius used by every distance in the service
const EarthRadiusKm = 6371.0

// boxSlack widens bounding boxes so rounding never drops a point that the
// haversine filter would keep.
const boxSlack = 1.0001

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DistanceKm returns the great-circle (haversine) distance between two points.
// Range filters and displayed distances must both come from here.
func DistanceKm(a, b schema.Location) float64 {
	lat1, lat2 := radians(a.Latitude), radians(b.Latitude)
	dLat := lat2 - lat1
	dLng := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// Within reports whether b lies inside the closed disc of radiusKm around a
func Within(a, b schema.Location, radiusKm float64) (float64, bool) {
	d := DistanceKm(a, b)
	return d, d <= radiusKm
}

// BoundingBox is a coarse latitude/longitude window used to prefilter rows
// before the exact distance check.
type BoundingBox struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// FullLongitude reports whether the box spans every meridian
func (b BoundingBox) FullLongitude() bool {
	return b.MinLongitude <= -180 && b.MaxLongitude >= 180
}

// Contains is a cheap check against the box edges
func (b BoundingBox) Contains(l schema.Location) bool {
	return l.Latitude >= b.MinLatitude && l.Latitude <= b.MaxLatitude &&
		l.Longitude >= b.MinLongitude && l.Longitude <= b.MaxLongitude
}

// BoundingBoxOf returns a box containing every point within radiusKm of
// origin. Boxes touching a pole or the antimeridian cover all longitudes.
func BoundingBoxOf(origin schema.Location, radiusKm float64) BoundingBox {
	angular := radiusKm / EarthRadiusKm * boxSlack
	latDelta := degrees(angular)

	box := BoundingBox{
		MinLatitude:  origin.Latitude - latDelta,
		MaxLatitude:  origin.Latitude + latDelta,
		MinLongitude: -180,
		MaxLongitude: 180,
	}

	if box.MinLatitude <= -90 || box.MaxLatitude >= 90 {
		box.MinLatitude = math.Max(box.MinLatitude, -90)
		box.MaxLatitude = math.Min(box.MaxLatitude, 90)
		return box
	}

	s := math.Sin(angular) / math.Cos(radians(origin.Latitude))
	if s >= 1 {
		return box
	}
	lngDelta := degrees(math.Asin(s))

	minLng, maxLng := origin.Longitude-lngDelta, origin.Longitude+lngDelta
	if minLng < -180 || maxLng > 180 {
		return box
	}

	box.MinLongitude, box.MaxLongitude = minLng, maxLng
	return box
}
