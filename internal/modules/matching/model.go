// README: Matching filter configuration, enumerations and scoring constants.
package matching

import (
	"time"

	"carpool/internal/modules/commuter"
	"carpool/internal/types"
)

type DayMode string

const (
	DayModeAny      DayMode = "any"
	DayModeExact    DayMode = "exact"
	DayModeFlexible DayMode = "flexible"
)

type DateOverlapMode string

const (
	DateOverlapAny     DateOverlapMode = "any"
	DateOverlapPartial DateOverlapMode = "partial"
	DateOverlapFull    DateOverlapMode = "full"
)

type SortStrategy string

const (
	SortComposite SortStrategy = "composite"
	SortDistance  SortStrategy = "distance"
	SortTime      SortStrategy = "time"
)

// FilterConfig holds the per-request filter and sort parameters.
type FilterConfig struct {
	DayMode       DayMode
	MinSharedDays int

	// Miles; values at or above UnboundedDistance disable the cutoff.
	StartDistanceLimit float64
	EndDistanceLimit   float64

	// Values at or above UnboundedTime disable the cutoff.
	StartTimeLimit time.Duration
	EndTimeLimit   time.Duration

	DateOverlap DateOverlapMode
	Sort        SortStrategy

	// Optional overrides of the requester's own working days and coop term.
	DaysWorking *commuter.Week
	CoopStart   *time.Time
	CoopEnd     *time.Time
}

const (
	UnboundedDistance = 20.0
	UnboundedTime     = 4 * time.Hour
)

// DefaultFilterConfig matches the initial state of the filter panel: no day,
// distance, time or date constraint and the composite sort.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		DayMode:            DayModeAny,
		MinSharedDays:      1,
		StartDistanceLimit: UnboundedDistance,
		EndDistanceLimit:   UnboundedDistance,
		StartTimeLimit:     UnboundedTime,
		EndTimeLimit:       UnboundedTime,
		DateOverlap:        DateOverlapAny,
		Sort:               SortComposite,
	}
}

func (c FilterConfig) startDistanceBounded() bool { return c.StartDistanceLimit < UnboundedDistance }
func (c FilterConfig) endDistanceBounded() bool   { return c.EndDistanceLimit < UnboundedDistance }
func (c FilterConfig) startTimeBounded() bool     { return c.StartTimeLimit < UnboundedTime }
func (c FilterConfig) endTimeBounded() bool       { return c.EndTimeLimit < UnboundedTime }

// Recommendation is one scored candidate; lower scores are better matches.
type Recommendation struct {
	CandidateID types.ID `json:"id"`
	Score       float64  `json:"score"`
}

// Reason names the filter rule that excluded a candidate.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonViewer        Reason = "viewer"
	ReasonRiderNoSeat   Reason = "rider_incompatible"
	ReasonBothDrivers   Reason = "both_drivers"
	ReasonSameGroup     Reason = "same_group"
	ReasonDays          Reason = "days"
	ReasonScheduleTime  Reason = "schedule_time"
	ReasonDistance      Reason = "distance"
	ReasonDateOverlap   Reason = "date_overlap"
	ReasonInvalidRecord Reason = "invalid_record"
	// ReasonIndexPrefilter counts pool members the spatial index never
	// handed to the filter because their home lies outside the search box.
	ReasonIndexPrefilter Reason = "index_prefilter"
)

// Listing sizes used by callers when truncating ranked results.
const (
	MapListingLimit = 150
	SidebarLimit    = 50
	NoLimit         = -1
)

var cutoffs = struct {
	startDistance float64 // miles
	endDistance   float64 // miles
	startTime     float64 // minutes
	endTime       float64 // minutes
}{6, 6, 80, 80}

var weights = struct {
	startDistance float64
	endDistance   float64
	startTime     float64
	endTime       float64
	days          float64
	overlap       float64
}{0.2, 0.4, 0.1, 0.1, 0.1, 0.1}
