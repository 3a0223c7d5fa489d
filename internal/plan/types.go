// Package plan holds the training plan domain model: the plan structure
// returned by the generation service, logged workout outcomes, pace
// arithmetic and the calendar layout used for display.
package plan

import (
	"fmt"

	"github.com/google/uuid"
)

// Status is the user-logged outcome for a single workout slot.
type Status string

const (
	StatusUnset     Status = ""
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUnset, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// DailyWorkout is one scheduled training entry plus whatever the user has
// logged against it. Actual-performance fields are meaningful only when
// Status is StatusCompleted; pace is derived from them, never stored.
type DailyWorkout struct {
	Day           string   `json:"day"`
	Workout       string   `json:"workout"`
	Status        Status   `json:"status,omitempty"`
	ActualNotes   *string  `json:"actualNotes,omitempty"`
	DistanceMiles *float64 `json:"distanceMiles,omitempty"`
	TimeMinutes   *int     `json:"timeMinutes,omitempty"`
	TimeSeconds   *int     `json:"timeSeconds,omitempty"`
}

// Logged reports whether the user has recorded any outcome for this slot.
func (d DailyWorkout) Logged() bool {
	return d.Status != StatusUnset
}

// WeeklyPlan is one week of the schedule.
type WeeklyPlan struct {
	WeekNumber    int            `json:"weekNumber"`
	Summary       string         `json:"summary"`
	DailyWorkouts []DailyWorkout `json:"dailyWorkouts"`
}

// RunningPlan is the full multi-week schedule. It is created wholesale from
// a generation-service response and treated as an immutable value afterwards;
// log updates go through UpdateDay/ClearDay which return a fresh copy.
type RunningPlan struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Introduction string       `json:"introduction"`
	Weeks        []WeeklyPlan `json:"weeks"`
	Conclusion   string       `json:"conclusion"`
	TargetPace   string       `json:"targetPace"`
}

// Validate checks the structural invariants the generation service is asked
// for: at least one week, week numbers counting up from 1, and a non-empty
// first week of at most seven days. Zero-day later weeks are tolerated as
// degenerate input (the layout engine skips them).
func (p *RunningPlan) Validate() error {
	if len(p.Weeks) == 0 {
		return fmt.Errorf("plan has no weeks")
	}
	for i, w := range p.Weeks {
		if w.WeekNumber != i+1 {
			return fmt.Errorf("week %d has weekNumber %d", i+1, w.WeekNumber)
		}
	}
	first := p.Weeks[0].DailyWorkouts
	if len(first) == 0 || len(first) > 7 {
		return fmt.Errorf("first week has %d daily workouts", len(first))
	}
	return nil
}

// Clone returns a deep copy of the plan. Callers mutate the copy and swap it
// in as the new current plan, so no holder of the old value ever observes a
// half-updated day.
func (p *RunningPlan) Clone() *RunningPlan {
	cp := *p
	cp.Weeks = make([]WeeklyPlan, len(p.Weeks))
	for i, w := range p.Weeks {
		week := w
		week.DailyWorkouts = make([]DailyWorkout, len(w.DailyWorkouts))
		for j, d := range w.DailyWorkouts {
			week.DailyWorkouts[j] = cloneDay(d)
		}
		cp.Weeks[i] = week
	}
	return &cp
}

func cloneDay(d DailyWorkout) DailyWorkout {
	if d.ActualNotes != nil {
		v := *d.ActualNotes
		d.ActualNotes = &v
	}
	if d.DistanceMiles != nil {
		v := *d.DistanceMiles
		d.DistanceMiles = &v
	}
	if d.TimeMinutes != nil {
		v := *d.TimeMinutes
		d.TimeMinutes = &v
	}
	if d.TimeSeconds != nil {
		v := *d.TimeSeconds
		d.TimeSeconds = &v
	}
	return d
}
