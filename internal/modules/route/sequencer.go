package route

import (
	"carpool/internal/modules/commuter"
	"carpool/internal/modules/location"
	"carpool/internal/types"
)

// Sequence orders the pickups and drop-offs of riders starting from the
// driver's home: at each step it visits the nearest pending pickup or the
// nearest drop-off of a rider already in the car. Ties go to pickups before
// drop-offs, then to input order. The last waypoint is the driver's work.
//
// Coordinates are not validated; callers discard invalid riders first.
func Sequence(driver commuter.Commuter, riders []commuter.Commuter) []Waypoint {
	out := make([]Waypoint, 0, 2*len(riders)+1)
	waiting := make([]bool, len(riders))
	aboard := make([]bool, len(riders))
	for i := range waiting {
		waiting[i] = true
	}

	cur := driver.Home
	for step := 0; step < 2*len(riders); step++ {
		best, kind := -1, KindPickup
		var bestDist float64
		consider := func(i int, k WaypointKind, p types.Point) {
			d := location.PlanarDistance(cur, p)
			if best < 0 || d < bestDist {
				best, kind, bestDist = i, k, d
			}
		}
		for i, r := range riders {
			if waiting[i] {
				consider(i, KindPickup, r.Home)
			}
		}
		for i, r := range riders {
			if aboard[i] {
				consider(i, KindDropoff, r.Work)
			}
		}

		r := riders[best]
		wp := Waypoint{Kind: kind, OwnerID: r.ID}
		if kind == KindPickup {
			wp.Point = r.Home
			waiting[best], aboard[best] = false, true
		} else {
			wp.Point = r.Work
			aboard[best] = false
		}
		out = append(out, wp)
		cur = wp.Point
	}

	return append(out, Waypoint{Point: driver.Work, Kind: KindDestination, OwnerID: driver.ID})
}

// ComputeGroupRoute sequences a carpool group. The first DRIVER member
// drives; every RIDER member is picked up and dropped off. Other drivers are
// passengers without a stop of their own.
func ComputeGroupRoute(members []commuter.Commuter) (commuter.Commuter, []Waypoint, error) {
	driver, riders, err := splitGroup(members)
	if err != nil {
		return commuter.Commuter{}, nil, err
	}
	return driver, Sequence(driver, riders), nil
}

func splitGroup(members []commuter.Commuter) (commuter.Commuter, []commuter.Commuter, error) {
	var (
		driver commuter.Commuter
		found  bool
		riders []commuter.Commuter
	)
	for _, m := range members {
		switch m.Role {
		case commuter.RoleViewer:
			return commuter.Commuter{}, nil, ErrViewerRoute
		case commuter.RoleDriver:
			if !found {
				driver, found = m, true
			}
		case commuter.RoleRider:
			riders = append(riders, m)
		}
	}
	if !found {
		return commuter.Commuter{}, nil, ErrNoDriver
	}
	return driver, riders, nil
}

// Points flattens a waypoint sequence into the full stop list, starting at
// the driver's home.
func Points(driverHome types.Point, wps []Waypoint) []types.Point {
	out := make([]types.Point, 0, len(wps)+1)
	out = append(out, driverHome)
	for _, wp := range wps {
		out = append(out, wp.Point)
	}
	return out
}
