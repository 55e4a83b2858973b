package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carpool/internal/modules/commuter"
	"carpool/internal/types"
)

var weekdays = commuter.Week{false, true, true, true, true, true, false}

func tod(h, m int) *commuter.TimeOfDay {
	return &commuter.TimeOfDay{Hour: h, Minute: m}
}

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func groupID(s string) *types.ID {
	id := types.ID(s)
	return &id
}

// person returns an ACTIVE-looking commuter working weekdays 9:00-17:00
// through the whole of 2024 at the given home and work.
func person(id string, role commuter.Role, home, work types.Point) commuter.Commuter {
	seats := 0
	if role == commuter.RoleDriver {
		seats = 2
	}
	return commuter.Commuter{
		ID:           types.ID(id),
		Role:         role,
		SeatCapacity: seats,
		Home:         home,
		Work:         work,
		DaysWorking:  weekdays,
		WorkStart:    tod(9, 0),
		WorkEnd:      tod(17, 0),
		CoopStart:    day("2024-01-01"),
		CoopEnd:      day("2024-12-31"),
	}
}

var (
	origin = types.Point{Lng: 0, Lat: 0}
	office = types.Point{Lng: 1, Lat: 1}
)

func TestExclusionReason_Roles(t *testing.T) {
	cfg := DefaultFilterConfig()
	driver := person("d", commuter.RoleDriver, origin, office)
	rider := person("r", commuter.RoleRider, origin, office)
	viewer := person("v", commuter.RoleViewer, origin, office)
	fullDriver := person("d0", commuter.RoleDriver, origin, office)
	fullDriver.SeatCapacity = 0

	cases := []struct {
		name      string
		requester commuter.Commuter
		candidate commuter.Commuter
		want      Reason
	}{
		{"viewer candidate", rider, viewer, ReasonViewer},
		{"viewer candidate for driver", driver, viewer, ReasonViewer},
		{"rider with rider", rider, person("r2", commuter.RoleRider, origin, office), ReasonRiderNoSeat},
		{"rider with full driver", rider, fullDriver, ReasonRiderNoSeat},
		{"rider with driver", rider, driver, ReasonNone},
		{"driver with driver", driver, person("d2", commuter.RoleDriver, origin, office), ReasonBothDrivers},
		{"driver with rider", driver, rider, ReasonNone},
		{"viewer with driver", viewer, driver, ReasonNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExclusionReason(tc.requester, tc.candidate, cfg))
			assert.Equal(t, tc.want == ReasonNone, Filter(tc.requester, tc.candidate, cfg))
		})
	}
}

func TestExclusionReason_SameGroup(t *testing.T) {
	cfg := DefaultFilterConfig()
	requester := person("r", commuter.RoleRider, origin, office)
	candidate := person("d", commuter.RoleDriver, origin, office)

	candidate.GroupID = groupID("g1")
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "requester without group")

	requester.GroupID = groupID("g2")
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "different groups")

	requester.GroupID = groupID("g1")
	assert.Equal(t, ReasonSameGroup, ExclusionReason(requester, candidate, cfg))
}

func TestExclusionReason_Days(t *testing.T) {
	requester := person("r", commuter.RoleRider, origin, office)
	candidate := person("d", commuter.RoleDriver, origin, office)
	candidate.DaysWorking = commuter.Week{false, true, true, false, false, false, false}

	cfg := DefaultFilterConfig()
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "any")

	cfg.DayMode = DayModeExact
	assert.Equal(t, ReasonDays, ExclusionReason(requester, candidate, cfg), "exact with two of five")

	candidate.DaysWorking = commuter.Week{true, true, true, true, true, true, true}
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "exact with superset")

	cfg.DayMode = DayModeFlexible
	cfg.MinSharedDays = 3
	candidate.DaysWorking = commuter.Week{false, true, true, false, false, false, false}
	assert.Equal(t, ReasonDays, ExclusionReason(requester, candidate, cfg), "flexible below minimum")

	cfg.MinSharedDays = 2
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "flexible at minimum")
}

func TestExclusionReason_DaysWorkingOverride(t *testing.T) {
	requester := person("r", commuter.RoleRider, origin, office)
	candidate := person("d", commuter.RoleDriver, origin, office)
	candidate.DaysWorking = commuter.Week{false, true, true, false, false, false, false}

	cfg := DefaultFilterConfig()
	cfg.DayMode = DayModeExact
	assert.Equal(t, ReasonDays, ExclusionReason(requester, candidate, cfg))

	override := commuter.Week{false, true, false, false, false, false, false}
	cfg.DaysWorking = &override
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg))
}

func TestExclusionReason_ScheduleTime(t *testing.T) {
	requester := person("r", commuter.RoleRider, origin, office)
	candidate := person("d", commuter.RoleDriver, origin, office)
	candidate.WorkStart = tod(8, 20)
	candidate.WorkEnd = tod(17, 30)

	cfg := DefaultFilterConfig()
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "unbounded")

	cfg.StartTimeLimit = 30 * time.Minute
	assert.Equal(t, ReasonScheduleTime, ExclusionReason(requester, candidate, cfg), "start delta 40 over 30")

	cfg.StartTimeLimit = 40 * time.Minute
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "start delta at limit")

	cfg.EndTimeLimit = 15 * time.Minute
	assert.Equal(t, ReasonScheduleTime, ExclusionReason(requester, candidate, cfg), "end delta 30 over 15")

	cfg.EndTimeLimit = 5 * time.Hour
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "limit past unbounded threshold")
}

func TestExclusionReason_ScheduleUsesMinutesOfDay(t *testing.T) {
	requester := person("r", commuter.RoleRider, origin, office)
	requester.WorkStart = tod(8, 50)
	candidate := person("d", commuter.RoleDriver, origin, office)
	candidate.WorkStart = tod(9, 10)

	cfg := DefaultFilterConfig()
	cfg.StartTimeLimit = 20 * time.Minute
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg))
}

func TestExclusionReason_UnknownScheduleSkipsTimeRule(t *testing.T) {
	requester := person("r", commuter.RoleRider, origin, office)
	candidate := person("d", commuter.RoleDriver, origin, office)
	candidate.WorkStart = nil
	candidate.WorkEnd = nil

	cfg := DefaultFilterConfig()
	cfg.StartTimeLimit = time.Minute
	cfg.EndTimeLimit = time.Minute
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg))
}

func TestExclusionReason_Distance(t *testing.T) {
	requester := person("r", commuter.RoleRider, origin, office)
	// 0.03 degrees ≈ 2.64 miles at home, 0.01 ≈ 0.88 miles at work.
	candidate := person("d", commuter.RoleDriver,
		types.Point{Lng: 0.03, Lat: 0}, types.Point{Lng: 1.01, Lat: 1})

	cfg := DefaultFilterConfig()
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "unbounded")

	cfg.StartDistanceLimit = 2
	assert.Equal(t, ReasonDistance, ExclusionReason(requester, candidate, cfg), "start over limit")

	cfg.StartDistanceLimit = 3
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "start within limit")

	cfg.EndDistanceLimit = 0.5
	assert.Equal(t, ReasonDistance, ExclusionReason(requester, candidate, cfg), "end over limit")

	cfg.EndDistanceLimit = UnboundedDistance
	cfg.StartDistanceLimit = UnboundedDistance + 5
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "limit past unbounded threshold")
}

func TestExclusionReason_DateOverlap(t *testing.T) {
	requester := person("r", commuter.RoleRider, origin, office)
	requester.CoopStart = day("2024-01-01")
	requester.CoopEnd = day("2024-06-30")

	candidate := person("d", commuter.RoleDriver, origin, office)
	setTerm := func(start, end string) {
		candidate.CoopStart = day(start)
		candidate.CoopEnd = day(end)
	}

	cases := []struct {
		name       string
		start, end string
		mode       DateOverlapMode
		want       Reason
	}{
		{"any disjoint", "2025-01-01", "2025-06-30", DateOverlapAny, ReasonNone},
		{"partial disjoint after", "2024-07-01", "2024-12-31", DateOverlapPartial, ReasonDateOverlap},
		{"partial disjoint before", "2023-01-01", "2023-12-31", DateOverlapPartial, ReasonDateOverlap},
		{"partial touching", "2024-06-30", "2024-12-31", DateOverlapPartial, ReasonNone},
		{"partial inside", "2024-02-01", "2024-03-01", DateOverlapPartial, ReasonNone},
		{"full inside", "2024-02-01", "2024-03-01", DateOverlapFull, ReasonDateOverlap},
		{"full equal", "2024-01-01", "2024-06-30", DateOverlapFull, ReasonNone},
		{"full superset", "2023-09-01", "2024-08-31", DateOverlapFull, ReasonNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setTerm(tc.start, tc.end)
			cfg := DefaultFilterConfig()
			cfg.DateOverlap = tc.mode
			assert.Equal(t, tc.want, ExclusionReason(requester, candidate, cfg))
		})
	}
}

func TestExclusionReason_MissingDates(t *testing.T) {
	requester := person("r", commuter.RoleRider, origin, office)
	candidate := person("d", commuter.RoleDriver, origin, office)
	candidate.CoopEnd = nil

	cfg := DefaultFilterConfig()
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg), "any tolerates missing dates")

	for _, mode := range []DateOverlapMode{DateOverlapPartial, DateOverlapFull} {
		cfg.DateOverlap = mode
		assert.Equal(t, ReasonDateOverlap, ExclusionReason(requester, candidate, cfg), string(mode))
	}
}

func TestExclusionReason_CoopOverride(t *testing.T) {
	requester := person("r", commuter.RoleRider, origin, office)
	requester.CoopStart = nil
	requester.CoopEnd = nil
	candidate := person("d", commuter.RoleDriver, origin, office)

	cfg := DefaultFilterConfig()
	cfg.DateOverlap = DateOverlapFull
	assert.Equal(t, ReasonDateOverlap, ExclusionReason(requester, candidate, cfg))

	cfg.CoopStart = day("2024-03-01")
	cfg.CoopEnd = day("2024-05-31")
	assert.Equal(t, ReasonNone, ExclusionReason(requester, candidate, cfg))
}

func TestExclusionReason_RuleOrder(t *testing.T) {
	requester := person("r", commuter.RoleRider, origin, office)
	candidate := person("d", commuter.RoleDriver, types.Point{Lng: 0.5, Lat: 0}, office)
	candidate.DaysWorking = commuter.Week{}
	candidate.WorkStart = tod(6, 0)
	candidate.CoopStart = nil

	cfg := DefaultFilterConfig()
	cfg.DayMode = DayModeExact
	cfg.StartTimeLimit = 30 * time.Minute
	cfg.StartDistanceLimit = 1
	cfg.DateOverlap = DateOverlapFull

	assert.Equal(t, ReasonDays, ExclusionReason(requester, candidate, cfg))
	cfg.DayMode = DayModeAny
	assert.Equal(t, ReasonScheduleTime, ExclusionReason(requester, candidate, cfg))
	cfg.StartTimeLimit = UnboundedTime
	assert.Equal(t, ReasonDistance, ExclusionReason(requester, candidate, cfg))
	cfg.StartDistanceLimit = UnboundedDistance
	assert.Equal(t, ReasonDateOverlap, ExclusionReason(requester, candidate, cfg))
}

// A driver requester never sees another driver, whatever the seats.
func TestFilter_ScenarioDriverPair(t *testing.T) {
	requester := person("d1", commuter.RoleDriver, origin, office)
	requester.SeatCapacity = 2
	candidate := person("d2", commuter.RoleDriver, origin, office)

	assert.False(t, Filter(requester, candidate, DefaultFilterConfig()))
}
