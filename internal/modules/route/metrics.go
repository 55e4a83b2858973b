package route

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoutesSequenced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carpool_group_routes_sequenced_total",
			Help: "Total number of group routes sequenced",
		},
	)

	DiscardedRiders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carpool_group_route_discarded_riders_total",
			Help: "Total number of riders dropped from a group route for invalid records",
		},
	)

	DirectionsFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carpool_directions_failures_total",
			Help: "Total number of failed directions provider calls",
		},
	)
)
