package matching

import (
	"time"

	"carpool/internal/modules/commuter"
	"carpool/internal/modules/location"
)

// pairStats holds the quantities shared by the filter rules and the scorer
// for one requester/candidate pair.
type pairStats struct {
	startMiles float64
	endMiles   float64

	schedulesKnown bool
	startDelta     int // minutes
	endDelta       int // minutes

	sharedDays    int
	requesterDays int

	datesKnown     bool
	partialOverlap bool
	fullOverlap    bool
}

func measure(req, cand commuter.Commuter, cfg FilterConfig) pairStats {
	st := pairStats{
		startMiles: location.ApproximateMiles(req.Home, cand.Home),
		endMiles:   location.ApproximateMiles(req.Work, cand.Work),
	}

	days := req.DaysWorking
	if cfg.DaysWorking != nil {
		days = *cfg.DaysWorking
	}
	st.requesterDays = days.Count()
	st.sharedDays = days.Shared(cand.DaysWorking)

	if req.HasSchedule() && cand.HasSchedule() {
		st.schedulesKnown = true
		st.startDelta = commuter.MinutesBetween(*req.WorkStart, *cand.WorkStart)
		st.endDelta = commuter.MinutesBetween(*req.WorkEnd, *cand.WorkEnd)
	}

	reqStart, reqEnd := req.CoopStart, req.CoopEnd
	if cfg.CoopStart != nil && cfg.CoopEnd != nil {
		reqStart, reqEnd = cfg.CoopStart, cfg.CoopEnd
	}
	if reqStart != nil && reqEnd != nil && cand.HasCoopTerm() {
		st.datesKnown = true
		st.partialOverlap = rangesIntersect(*reqStart, *reqEnd, *cand.CoopStart, *cand.CoopEnd)
		st.fullOverlap = !cand.CoopStart.After(*reqStart) && !cand.CoopEnd.Before(*reqEnd)
	}
	return st
}

// rangesIntersect reports whether [cs, ce] touches [rs, re]: the candidate
// range is disjoint only when it lies wholly before or wholly after.
func rangesIntersect(rs, re, cs, ce time.Time) bool {
	before := cs.Before(rs) && ce.Before(rs)
	after := ce.After(re) && cs.After(re)
	return !before && !after
}

// Filter reports whether cand is eligible to be scored against req.
func Filter(req, cand commuter.Commuter, cfg FilterConfig) bool {
	return ExclusionReason(req, cand, cfg) == ReasonNone
}

// ExclusionReason returns the first rule that excludes cand, or ReasonNone.
func ExclusionReason(req, cand commuter.Commuter, cfg FilterConfig) Reason {
	if r := roleExclusion(req, cand); r != ReasonNone {
		return r
	}
	return statsExclusion(measure(req, cand, cfg), cfg)
}

func roleExclusion(req, cand commuter.Commuter) Reason {
	switch {
	case cand.Role == commuter.RoleViewer:
		return ReasonViewer
	case req.Role == commuter.RoleRider && (cand.Role == commuter.RoleRider || cand.SeatCapacity == 0):
		return ReasonRiderNoSeat
	case req.Role == commuter.RoleDriver && cand.Role == commuter.RoleDriver:
		return ReasonBothDrivers
	case req.GroupID != nil && cand.InGroup(*req.GroupID):
		return ReasonSameGroup
	}
	return ReasonNone
}

func statsExclusion(st pairStats, cfg FilterConfig) Reason {
	switch cfg.DayMode {
	case DayModeExact:
		if st.sharedDays != st.requesterDays {
			return ReasonDays
		}
	case DayModeFlexible:
		if st.sharedDays < cfg.MinSharedDays {
			return ReasonDays
		}
	}

	if st.schedulesKnown {
		if cfg.startTimeBounded() && float64(st.startDelta) > cfg.StartTimeLimit.Minutes() {
			return ReasonScheduleTime
		}
		if cfg.endTimeBounded() && float64(st.endDelta) > cfg.EndTimeLimit.Minutes() {
			return ReasonScheduleTime
		}
	}

	if cfg.startDistanceBounded() && st.startMiles > cfg.StartDistanceLimit {
		return ReasonDistance
	}
	if cfg.endDistanceBounded() && st.endMiles > cfg.EndDistanceLimit {
		return ReasonDistance
	}

	if cfg.DateOverlap != DateOverlapAny {
		if !st.datesKnown {
			return ReasonDateOverlap
		}
		if cfg.DateOverlap == DateOverlapPartial && !st.partialOverlap {
			return ReasonDateOverlap
		}
		if cfg.DateOverlap == DateOverlapFull && !st.fullOverlap {
			return ReasonDateOverlap
		}
	}
	return ReasonNone
}
