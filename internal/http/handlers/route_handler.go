// README: Route handlers for group routes and two-commuter routes.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/maps"
	"carpool/internal/modules/route"
	"carpool/internal/types"
)

type RouteService interface {
	GroupRoute(ctx context.Context, groupID types.ID) (*route.GroupRoute, error)
	PairRoute(ctx context.Context, viewerID, otherID types.ID) (*route.Pair, error)
}

type RouteHandler struct {
	route RouteService
}

func NewRouteHandler(svc RouteService) *RouteHandler {
	return &RouteHandler{route: svc}
}

type directionsResp struct {
	Polyline        string  `json:"polyline"`
	DistanceMeters  int     `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type groupRouteResp struct {
	GroupID    types.ID         `json:"group_id"`
	DriverID   types.ID         `json:"driver_id"`
	Waypoints  []route.Waypoint `json:"waypoints"`
	Points     [][2]float64     `json:"points"`
	Polyline   string           `json:"polyline"`
	Directions *directionsResp  `json:"directions,omitempty"`
}

type pairRouteResp struct {
	Points     [][2]float64    `json:"points"`
	Polyline   string          `json:"polyline"`
	Directions *directionsResp `json:"directions,omitempty"`
}

func lngLats(points []types.Point) [][2]float64 {
	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = p.LngLat()
	}
	return out
}

func toDirectionsResp(d *maps.Directions) *directionsResp {
	if d == nil {
		return nil
	}
	return &directionsResp{
		Polyline:        d.Polyline,
		DistanceMeters:  d.DistanceMeters,
		DurationSeconds: d.Duration.Seconds(),
	}
}

func (h *RouteHandler) Group(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		writeError(c, http.StatusBadRequest, "invalid group id")
		return
	}
	gr, err := h.route.GroupRoute(c.Request.Context(), types.ID(uri.ID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, groupRouteResp{
		GroupID:    gr.GroupID,
		DriverID:   gr.DriverID,
		Waypoints:  gr.Waypoints,
		Points:     lngLats(gr.Points),
		Polyline:   gr.Polyline,
		Directions: toDirectionsResp(gr.Directions),
	})
}

func (h *RouteHandler) Pair(c *gin.Context) {
	var uri pairURI
	if err := c.ShouldBindUri(&uri); err != nil {
		writeError(c, http.StatusBadRequest, "invalid commuter id")
		return
	}
	p, err := h.route.PairRoute(c.Request.Context(), types.ID(uri.ID), types.ID(uri.Other))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, pairRouteResp{
		Points:     lngLats(p.Points),
		Polyline:   p.Polyline,
		Directions: toDirectionsResp(p.Directions),
	})
}
