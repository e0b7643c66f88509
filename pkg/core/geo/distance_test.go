package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_IdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{40.7128, -74.0060},
		{-33.8688, 151.2093},
		{89.9999, 179.9999},
	}
	for _, p := range points {
		d := Distance(p[0], p[1], p[0], p[1])
		assert.Zero(t, d, "identical coordinates must return exactly 0")
	}
}

func TestDistance_KnownPairs(t *testing.T) {
	// New York City to Los Angeles, roughly 2445 miles
	d := Distance(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InDelta(t, 2445, d, 15)

	// London to Paris, roughly 213 miles
	d = Distance(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, 213, d, 5)
}

func TestDistance_Symmetric(t *testing.T) {
	d1 := Distance(40.7128, -74.0060, 34.0522, -118.2437)
	d2 := Distance(34.0522, -118.2437, 40.7128, -74.0060)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistance_NearbyPointsNotNaN(t *testing.T) {
	// Points a few feet apart exercise the clamp: the law-of-cosines
	// intermediate lands at or just above 1.
	d := Distance(40.712800, -74.006000, 40.712801, -74.006001)
	assert.False(t, math.IsNaN(d))
	assert.GreaterOrEqual(t, d, 0.0)
	assert.Less(t, d, 0.01)
}
