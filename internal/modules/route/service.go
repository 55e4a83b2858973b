// README: Route service loads group members, sequences the stops and asks the directions provider for a path.
package route

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"carpool/internal/maps"
	"carpool/internal/modules/commuter"
	"carpool/internal/types"
)

type CommuterSource interface {
	Get(ctx context.Context, id types.ID) (*commuter.Commuter, error)
	Group(ctx context.Context, groupID types.ID) ([]commuter.Commuter, error)
}

type DirectionsProvider interface {
	Directions(ctx context.Context, points []types.Point) (*maps.Directions, error)
}

// GroupRoute is a sequenced group with its flattened stop list. Directions
// is nil when no provider is configured or the provider failed.
type GroupRoute struct {
	GroupID    types.ID
	DriverID   types.ID
	Waypoints  []Waypoint
	Points     []types.Point
	Polyline   string
	Directions *maps.Directions
}

// Pair is the two-commuter route shown when a commuter inspects a match.
type Pair struct {
	Points     []types.Point
	Polyline   string
	Directions *maps.Directions
}

type Service struct {
	commuters  CommuterSource
	directions DirectionsProvider
	log        *zap.Logger
}

// NewService wires the route service. directions may be nil.
func NewService(commuters CommuterSource, directions DirectionsProvider, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{commuters: commuters, directions: directions, log: log}
}

func (s *Service) GroupRoute(ctx context.Context, groupID types.ID) (*GroupRoute, error) {
	members, err := s.commuters.Group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: group %s has no members", commuter.ErrNotFound, groupID)
	}

	driver, riders, err := splitGroup(members)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", groupID, err)
	}
	if err := driver.Validate(); err != nil {
		return nil, fmt.Errorf("group %s driver: %w", groupID, err)
	}

	valid := make([]commuter.Commuter, 0, len(riders))
	for _, r := range riders {
		if err := r.Validate(); err != nil {
			s.log.Warn("discarding rider from group route",
				zap.String("group_id", string(groupID)),
				zap.String("rider_id", string(r.ID)),
				zap.Error(err),
			)
			DiscardedRiders.Inc()
			continue
		}
		valid = append(valid, r)
	}

	wps := Sequence(driver, valid)
	RoutesSequenced.Inc()

	out := &GroupRoute{
		GroupID:   groupID,
		DriverID:  driver.ID,
		Waypoints: wps,
		Points:    Points(driver.Home, wps),
	}
	out.Polyline = EncodePolyline(out.Points)
	out.Directions = s.lookupDirections(ctx, out.Points)
	return out, nil
}

func (s *Service) PairRoute(ctx context.Context, viewerID, otherID types.ID) (*Pair, error) {
	viewer, err := s.loadValid(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	other, err := s.loadValid(ctx, otherID)
	if err != nil {
		return nil, err
	}

	points := PairRoute(*viewer, *other)
	return &Pair{
		Points:     points,
		Polyline:   EncodePolyline(points),
		Directions: s.lookupDirections(ctx, points),
	}, nil
}

func (s *Service) loadValid(ctx context.Context, id types.ID) (*commuter.Commuter, error) {
	c, err := s.commuters.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) lookupDirections(ctx context.Context, points []types.Point) *maps.Directions {
	if s.directions == nil {
		return nil
	}
	d, err := s.directions.Directions(ctx, points)
	if err != nil {
		DirectionsFailures.Inc()
		s.log.Warn("directions lookup failed", zap.Int("points", len(points)), zap.Error(err))
		return nil
	}
	return d
}
