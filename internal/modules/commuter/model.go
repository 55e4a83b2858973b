// README: Commuter record, role and schedule value objects.
package commuter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"carpool/internal/modules/location"
	"carpool/internal/types"
)

var (
	ErrNotFound = errors.New("commuter not found")
	ErrInvalid  = errors.New("invalid commuter")
)

type Role string

const (
	RoleDriver Role = "DRIVER"
	RoleRider  Role = "RIDER"
	RoleViewer Role = "VIEWER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDriver, RoleRider, RoleViewer:
		return true
	}
	return false
}

type Status string

const StatusActive Status = "ACTIVE"

// Week holds one flag per weekday, index 0 = Sunday.
type Week [7]bool

// ParseWeek parses the stored "S,M,T,W,R,F,S" form, e.g. "0,1,1,1,1,1,0".
func ParseWeek(s string) (Week, error) {
	var w Week
	parts := strings.Split(s, ",")
	if len(parts) != len(w) {
		return w, fmt.Errorf("%w: days working needs %d entries, got %d", ErrInvalid, len(w), len(parts))
	}
	for i, p := range parts {
		switch strings.TrimSpace(p) {
		case "1":
			w[i] = true
		case "0":
		default:
			return w, fmt.Errorf("%w: days working entry %d is %q", ErrInvalid, i, p)
		}
	}
	return w, nil
}

func (w Week) String() string {
	parts := make([]string, len(w))
	for i, d := range w {
		if d {
			parts[i] = "1"
		} else {
			parts[i] = "0"
		}
	}
	return strings.Join(parts, ",")
}

// Count returns the number of days worked.
func (w Week) Count() int {
	n := 0
	for _, d := range w {
		if d {
			n++
		}
	}
	return n
}

// Shared returns the number of days both weeks work.
func (w Week) Shared(other Week) int {
	n := 0
	for i := range w {
		if w[i] && other[i] {
			n++
		}
	}
	return n
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: time of day %q", ErrInvalid, s)
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinutesBetween returns |a - b| in minutes of the day.
func MinutesBetween(a, b TimeOfDay) int {
	d := a.Minutes() - b.Minutes()
	if d < 0 {
		return -d
	}
	return d
}

// Commuter is a participant in the matching pool.
type Commuter struct {
	ID           types.ID
	Role         Role
	SeatCapacity int
	Home         types.Point
	Work         types.Point
	DaysWorking  Week
	WorkStart    *TimeOfDay
	WorkEnd      *TimeOfDay
	CoopStart    *time.Time
	CoopEnd      *time.Time
	GroupID      *types.ID
}

// HasSchedule reports whether both work times are known.
func (c Commuter) HasSchedule() bool {
	return c.WorkStart != nil && c.WorkEnd != nil
}

// HasCoopTerm reports whether both coop dates are known.
func (c Commuter) HasCoopTerm() bool {
	return c.CoopStart != nil && c.CoopEnd != nil
}

// InGroup reports whether c belongs to the given carpool group.
func (c Commuter) InGroup(id types.ID) bool {
	return c.GroupID != nil && *c.GroupID == id
}

// Validate checks the boundary preconditions the matching and routing
// algorithms rely on.
func (c Commuter) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if !c.Role.Valid() {
		return fmt.Errorf("%w: %s has unknown role %q", ErrInvalid, c.ID, c.Role)
	}
	if c.SeatCapacity < 0 {
		return fmt.Errorf("%w: %s has negative seat capacity", ErrInvalid, c.ID)
	}
	if !location.IsValidPoint(c.Home) {
		return fmt.Errorf("%w: %s has invalid home coordinate", ErrInvalid, c.ID)
	}
	if !location.IsValidPoint(c.Work) {
		return fmt.Errorf("%w: %s has invalid work coordinate", ErrInvalid, c.ID)
	}
	return nil
}

// PoolOptions narrows the candidate pool for a requester.
type PoolOptions struct {
	// HideContacted drops commuters the requester has already messaged.
	HideContacted bool
	// FavoritesOnly keeps only commuters the requester has favourited.
	FavoritesOnly bool
}
