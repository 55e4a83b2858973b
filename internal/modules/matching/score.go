package matching

import (
	"math"

	"carpool/internal/modules/commuter"
)

// Score computes cand's score relative to req under cfg.Sort. It assumes cand
// already passed Filter. Lower is better.
func Score(req, cand commuter.Commuter, cfg FilterConfig) float64 {
	return scoreStats(measure(req, cand, cfg), cfg.Sort)
}

func scoreStats(st pairStats, sort SortStrategy) float64 {
	switch sort {
	case SortDistance:
		return st.startMiles + st.endMiles
	case SortTime:
		if !st.schedulesKnown {
			return 0
		}
		return normalize(float64(st.startDelta), cutoffs.startTime) +
			normalize(float64(st.endDelta), cutoffs.endTime)
	default:
		return compositeScore(st)
	}
}

func compositeScore(st pairStats) float64 {
	score := normalize(st.startMiles, cutoffs.startDistance)*weights.startDistance +
		normalize(st.endMiles, cutoffs.endDistance)*weights.endDistance

	// An unknown schedule carries the whole time weight.
	if st.schedulesKnown {
		score += normalize(float64(st.startDelta), cutoffs.startTime)*weights.startTime +
			normalize(float64(st.endDelta), cutoffs.endTime)*weights.endTime
	} else {
		score += weights.startTime + weights.endTime
	}

	sharedFraction := 0.0
	if st.requesterDays > 0 {
		sharedFraction = float64(st.sharedDays) / float64(st.requesterDays)
	}
	score += (1 - sharedFraction) * weights.days
	score += dateScore(st) * weights.overlap
	return score
}

func dateScore(st pairStats) float64 {
	switch {
	case st.fullOverlap:
		return 0
	case st.partialOverlap:
		return 0.5
	default:
		return 1
	}
}

// normalize clamps raw/cutoff into [0, 1].
func normalize(raw, cutoff float64) float64 {
	return math.Min(raw/cutoff, 1)
}
