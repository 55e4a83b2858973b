package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carpool_recommendation_requests_total",
			Help: "Total number of recommendation requests by listing",
		},
		[]string{"listing", "sort"},
	)

	CandidateExclusions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carpool_candidate_exclusions_total",
			Help: "Total number of pool candidates excluded by filter rule or skipped by the spatial index",
		},
		[]string{"reason"},
	)

	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carpool_scoring_duration_seconds",
			Help:    "Duration of filtering, scoring and ranking a candidate pool",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"listing"},
	)
)
