// README: In-process engine cases; time filtering, scoring, ranking and sequencing on synthetic commuters.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"reflect"
	"time"

	"carpool/internal/modules/commuter"
	"carpool/internal/modules/matching"
	"carpool/internal/modules/route"
	"carpool/internal/types"
)

// Synthetic commuters live in a box around downtown Boston.
var (
	homeMin = types.Point{Lng: -71.25, Lat: 42.20}
	workMin = types.Point{Lng: -71.12, Lat: 42.33}
)

const (
	homeSpan = 0.35
	workSpan = 0.10
)

var benchRoles = []commuter.Role{commuter.RoleDriver, commuter.RoleRider, commuter.RoleViewer}

func syntheticCommuter(rng *rand.Rand, id string, role commuter.Role) commuter.Commuter {
	start := commuter.TimeOfDay{Hour: 7 + rng.Intn(3), Minute: rng.Intn(60)}
	end := commuter.TimeOfDay{Hour: 16 + rng.Intn(3), Minute: rng.Intn(60)}
	coopStart := time.Date(2024, time.Month(1+rng.Intn(6)), 1, 0, 0, 0, 0, time.UTC)
	coopEnd := coopStart.AddDate(0, 4+rng.Intn(4), 0)

	c := commuter.Commuter{
		ID:           types.ID(id),
		Role:         role,
		SeatCapacity: rng.Intn(4),
		Home:         types.Point{Lng: homeMin.Lng + rng.Float64()*homeSpan, Lat: homeMin.Lat + rng.Float64()*homeSpan},
		Work:         types.Point{Lng: workMin.Lng + rng.Float64()*workSpan, Lat: workMin.Lat + rng.Float64()*workSpan},
		WorkStart:    &start,
		WorkEnd:      &end,
		CoopStart:    &coopStart,
		CoopEnd:      &coopEnd,
	}
	for d := 1; d <= 5; d++ {
		c.DaysWorking[d] = rng.Intn(5) > 0
	}
	return c
}

func syntheticPool(seed int64, n int) (commuter.Commuter, []commuter.Commuter) {
	rng := rand.New(rand.NewSource(seed))
	requester := syntheticCommuter(rng, "requester", commuter.RoleRider)
	pool := make([]commuter.Commuter, n)
	for i := range pool {
		pool[i] = syntheticCommuter(rng, fmt.Sprintf("c%06d", i), benchRoles[rng.Intn(len(benchRoles))])
	}
	return requester, pool
}

func syntheticGroup(seed int64, riders int) (commuter.Commuter, []commuter.Commuter) {
	rng := rand.New(rand.NewSource(seed))
	driver := syntheticCommuter(rng, "driver", commuter.RoleDriver)
	out := make([]commuter.Commuter, riders)
	for i := range out {
		out[i] = syntheticCommuter(rng, fmt.Sprintf("r%d", i), commuter.RoleRider)
	}
	return driver, out
}

// scanAll scores the pool one candidate at a time, without the index.
func scanAll(requester commuter.Commuter, pool []commuter.Commuter, cfg matching.FilterConfig) []matching.Recommendation {
	scored := make([]matching.Recommendation, 0, len(pool))
	for _, c := range pool {
		if matching.Filter(requester, c, cfg) {
			scored = append(scored, matching.Recommendation{CandidateID: c.ID, Score: matching.Score(requester, c, cfg)})
		}
	}
	return matching.Rank(scored, matching.NoLimit)
}

func engineCases(cfg Config) []TestCase {
	return []TestCase{
		{
			Name:  fmt.Sprintf("Engine: composite ranking over %d commuters", cfg.PoolSize),
			Focus: "Scoring latency",
			Run: func(ctx context.Context, r *Runner) Result {
				requester, pool := syntheticPool(cfg.Seed, cfg.PoolSize)
				start := time.Now()
				recs := matching.Rank(matching.ComputeRecommendations(requester, pool, matching.DefaultFilterConfig()), matching.SidebarLimit)
				return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("returned=%d", len(recs))}
			},
		},
		{
			Name:  "Engine: indexed start-distance filter matches full scan",
			Focus: "R-tree prefilter",
			Run: func(ctx context.Context, r *Runner) Result {
				requester, pool := syntheticPool(cfg.Seed, cfg.PoolSize)
				fc := matching.DefaultFilterConfig()
				fc.StartDistanceLimit = 3

				scanStart := time.Now()
				want := scanAll(requester, pool, fc)
				scan := time.Since(scanStart)

				start := time.Now()
				got := matching.ComputeRecommendations(requester, pool, fc)
				indexed := time.Since(start)

				if !reflect.DeepEqual(want, got) {
					return Result{Status: "FAIL", Latency: indexed, Note: fmt.Sprintf("indexed=%d scan=%d results differ", len(got), len(want))}
				}
				return Result{Status: "PASS", Latency: indexed, Note: fmt.Sprintf("results=%d scan=%s", len(got), scan)}
			},
		},
		{
			Name:  fmt.Sprintf("Engine: sequence %d riders", cfg.Riders),
			Focus: "Route sequencing",
			Run: func(ctx context.Context, r *Runner) Result {
				driver, riders := syntheticGroup(cfg.Seed, cfg.Riders)
				const rounds = 1000
				var wps []route.Waypoint
				start := time.Now()
				for i := 0; i < rounds; i++ {
					wps = route.Sequence(driver, riders)
				}
				per := time.Since(start) / rounds
				if len(wps) != 2*len(riders)+1 {
					return Result{Status: "FAIL", Latency: per, Note: fmt.Sprintf("waypoints=%d", len(wps))}
				}
				return Result{Status: "PASS", Latency: per, Note: fmt.Sprintf("waypoints=%d", len(wps))}
			},
		},
	}
}
