// README: Common identifier and coordinate value objects used across modules.
package types

// ID is an opaque identifier for commuters and carpool groups.
type ID string

// Point is a (longitude, latitude) pair in raw degrees.
type Point struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// LngLat returns the point in the [lng, lat] order used by map clients.
func (p Point) LngLat() [2]float64 {
	return [2]float64{p.Lng, p.Lat}
}
