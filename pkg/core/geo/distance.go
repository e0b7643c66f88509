// Package geo provides great-circle distance calculations between
// client and caregiver coordinates.
package geo

import "math"

// EarthRadiusMiles is the mean radius of the Earth in miles
const EarthRadiusMiles = 3958.8

// Distance returns the great-circle distance in miles between two points.
// Identical coordinates return exactly 0 rather than a near-zero value
// from trigonometric rounding.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	// Spherical law of cosines. Floating-point overshoot can push the
	// central value fractionally outside [-1, 1], which would make Acos
	// return NaN, so clamp before inverting.
	central := math.Sin(rlat1)*math.Sin(rlat2) + math.Cos(rlat1)*math.Cos(rlat2)*math.Cos(deltaLon)
	central = math.Max(-1, math.Min(1, central))

	return EarthRadiusMiles * math.Acos(central)
}
