package matching

import (
	"carpool/internal/modules/commuter"
)

// Evaluation is the outcome of filtering and scoring a pool.
type Evaluation struct {
	// Scored holds the eligible candidates in pool order.
	Scored []Recommendation
	// Excluded counts candidates per exclusion rule.
	Excluded map[Reason]int
}

// ComputeRecommendations filters and scores pool against requester and returns
// every eligible candidate ranked best first.
func ComputeRecommendations(requester commuter.Commuter, pool []commuter.Commuter, cfg FilterConfig) []Recommendation {
	return Rank(Evaluate(requester, pool, cfg).Scored, NoLimit)
}

// Evaluate runs the filter and scorer over pool without ranking.
func Evaluate(requester commuter.Commuter, pool []commuter.Commuter, cfg FilterConfig) Evaluation {
	ev := Evaluation{
		Scored:   make([]Recommendation, 0, len(pool)),
		Excluded: make(map[Reason]int),
	}

	positions := candidatePositions(requester, pool, cfg)
	if skipped := len(pool) - len(positions); skipped > 0 {
		ev.Excluded[ReasonIndexPrefilter] += skipped
	}

	for _, i := range positions {
		cand := pool[i]
		if r := roleExclusion(requester, cand); r != ReasonNone {
			ev.Excluded[r]++
			continue
		}
		st := measure(requester, cand, cfg)
		if r := statsExclusion(st, cfg); r != ReasonNone {
			ev.Excluded[r]++
			continue
		}
		ev.Scored = append(ev.Scored, Recommendation{
			CandidateID: cand.ID,
			Score:       scoreStats(st, cfg.Sort),
		})
	}
	return ev
}

// candidatePositions returns the pool positions worth evaluating, in pool
// order. Large pools with a bounded start distance are narrowed with an
// R-tree; the exact distance rule still runs on every survivor.
func candidatePositions(requester commuter.Commuter, pool []commuter.Commuter, cfg FilterConfig) []int {
	if cfg.startDistanceBounded() && len(pool) >= indexMinPool {
		return NewPoolIndex(pool).Within(requester.Home, cfg.StartDistanceLimit)
	}
	all := make([]int, len(pool))
	for i := range all {
		all[i] = i
	}
	return all
}
