package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distance
// calculations (kilometres).
const EarthRadiusKm = 6371.0

// Point is a WGS-84 latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Valid reports whether the point lies in the latitude range [-90,90] and
// longitude range [-180,180]. NaN fails both comparisons.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Distance returns the great-circle distance between two points in
// kilometres, using the haversine formula. Behavior is undefined for
// out-of-range coordinates; callers guard with [Point.Valid] first.
func Distance(a, b Point) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}
