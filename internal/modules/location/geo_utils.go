// Package location holds pure geographic helpers for commuter coordinates.
package location

import (
	"math"

	"carpool/internal/types"
)

// milesPerDegree approximates the length of one coordinate degree in miles at
// the operating latitude. Matching cutoffs and weights are calibrated against
// this constant, so it must not be replaced by a geodesic distance.
const milesPerDegree = 88.0

// coordPrecision is the number of decimals kept for public coordinates.
const coordPrecision = 1e5

// PlanarDistance returns the Euclidean distance between two points in raw
// coordinate degrees.
func PlanarDistance(a, b types.Point) float64 {
	dLng := a.Lng - b.Lng
	dLat := a.Lat - b.Lat
	return math.Sqrt(dLng*dLng + dLat*dLat)
}

// ToApproximateMiles converts a degree distance into approximate miles.
func ToApproximateMiles(degrees float64) float64 {
	return degrees * milesPerDegree
}

// MilesToDegrees is the inverse of ToApproximateMiles.
func MilesToDegrees(miles float64) float64 {
	return miles / milesPerDegree
}

// ApproximateMiles is shorthand for ToApproximateMiles(PlanarDistance(a, b)).
func ApproximateMiles(a, b types.Point) float64 {
	return ToApproximateMiles(PlanarDistance(a, b))
}

// RoundCoord rounds a coordinate to five decimals (~1m), which is what the
// map listing exposes publicly.
func RoundCoord(v float64) float64 {
	return math.Round(v*coordPrecision) / coordPrecision
}

// IsValidPoint reports whether p is a finite, in-range (lng, lat) pair.
func IsValidPoint(p types.Point) bool {
	if math.IsNaN(p.Lng) || math.IsNaN(p.Lat) || math.IsInf(p.Lng, 0) || math.IsInf(p.Lat, 0) {
		return false
	}
	return p.Lng >= -180 && p.Lng <= 180 && p.Lat >= -90 && p.Lat <= 90
}
