// README: Route waypoint types and sentinel errors.
package route

import (
	"errors"

	"carpool/internal/types"
)

var (
	ErrNoDriver    = errors.New("group has no driver")
	ErrViewerRoute = errors.New("viewers have no group route")
)

type WaypointKind string

const (
	KindPickup      WaypointKind = "PICKUP"
	KindDropoff     WaypointKind = "DROPOFF"
	KindDestination WaypointKind = "DESTINATION"
)

// Waypoint is one stop in visiting order. OwnerID is the rider for pickups
// and drop-offs and the driver for the destination.
type Waypoint struct {
	Point   types.Point  `json:"point"`
	Kind    WaypointKind `json:"kind"`
	OwnerID types.ID     `json:"owner_id"`
}
