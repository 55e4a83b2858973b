package maps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"googlemaps.github.io/maps"

	"carpool/internal/types"
)

var ErrNoRoute = errors.New("no route found")

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

// Directions is the provider's rendering of an ordered stop list.
type Directions struct {
	Polyline       string
	DistanceMeters int
	Duration       time.Duration
}

// NewRouteService creates a new RouteService with the given API Key. Extra
// client options are passed through to the Maps client.
func NewRouteService(apiKey string, opts ...maps.ClientOption) (*RouteService, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// Directions asks for a driving route visiting points in the given order.
// The first point is the origin and the last the destination; anything in
// between is sent as a fixed-order waypoint.
func (s *RouteService) Directions(ctx context.Context, points []types.Point) (*Directions, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("directions need at least 2 points, got %d", len(points))
	}

	r := &maps.DirectionsRequest{
		Origin:      latLng(points[0]),
		Destination: latLng(points[len(points)-1]),
		Mode:        maps.TravelModeDriving,
		Region:      "us",
	}
	for _, p := range points[1 : len(points)-1] {
		r.Waypoints = append(r.Waypoints, latLng(p))
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	route := routes[0]
	d := &Directions{Polyline: route.OverviewPolyline.Points}
	for _, leg := range route.Legs {
		d.DistanceMeters += leg.Distance.Meters
		d.Duration += leg.Duration
	}
	return d, nil
}

func latLng(p types.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
