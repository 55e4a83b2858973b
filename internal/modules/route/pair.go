package route

import (
	"github.com/twpayne/go-polyline"

	"carpool/internal/modules/commuter"
	"carpool/internal/types"
)

// PairRoute is the stop list for a viewer looking at one other commuter. A
// rider is picked up by the other commuter; a driver picks the other one up.
// Anyone else sees only the other commuter's own commute.
func PairRoute(viewer, other commuter.Commuter) []types.Point {
	switch viewer.Role {
	case commuter.RoleRider:
		return []types.Point{other.Home, viewer.Home, viewer.Work, other.Work}
	case commuter.RoleDriver:
		return []types.Point{viewer.Home, other.Home, other.Work, viewer.Work}
	default:
		return []types.Point{other.Home, other.Work}
	}
}

// EncodePolyline encodes points in the Google polyline format, which orders
// each pair as latitude then longitude.
func EncodePolyline(points []types.Point) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lat, p.Lng}
	}
	return string(polyline.EncodeCoords(coords))
}
