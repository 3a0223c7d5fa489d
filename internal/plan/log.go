package plan

import "fmt"

// LogEntry is one coherent "log this day's outcome" action. All fields are
// applied together; there is no partial-field update.
type LogEntry struct {
	Status        Status
	ActualNotes   *string
	DistanceMiles *float64
	TimeMinutes   *int
	TimeSeconds   *int
}

// UpdateDay returns a copy of the plan with the identified day's record
// replaced by entry. Indices out of range are a contract violation (they are
// always derived from the same rendered plan being mutated) and fail loudly.
// Actual-performance fields are kept only for completed days.
func UpdateDay(p *RunningPlan, weekIdx, dayIdx int, entry LogEntry) (*RunningPlan, error) {
	if err := checkIndex(p, weekIdx, dayIdx); err != nil {
		return nil, err
	}
	if !entry.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", entry.Status)
	}
	if entry.DistanceMiles != nil && *entry.DistanceMiles <= 0 {
		return nil, fmt.Errorf("distance must be positive, got %v", *entry.DistanceMiles)
	}
	if entry.TimeMinutes != nil && *entry.TimeMinutes < 0 {
		return nil, fmt.Errorf("minutes must be non-negative, got %d", *entry.TimeMinutes)
	}
	if entry.TimeSeconds != nil && (*entry.TimeSeconds < 0 || *entry.TimeSeconds > 59) {
		return nil, fmt.Errorf("seconds must be in 0..59, got %d", *entry.TimeSeconds)
	}

	cp := p.Clone()
	day := &cp.Weeks[weekIdx].DailyWorkouts[dayIdx]
	day.Status = entry.Status
	if entry.Status == StatusCompleted {
		day.ActualNotes = entry.ActualNotes
		day.DistanceMiles = entry.DistanceMiles
		day.TimeMinutes = entry.TimeMinutes
		day.TimeSeconds = entry.TimeSeconds
	} else {
		day.ActualNotes = nil
		day.DistanceMiles = nil
		day.TimeMinutes = nil
		day.TimeSeconds = nil
	}
	return cp, nil
}

// ClearDay returns a copy of the plan with the identified day's status and
// all actual-performance fields reset.
func ClearDay(p *RunningPlan, weekIdx, dayIdx int) (*RunningPlan, error) {
	return UpdateDay(p, weekIdx, dayIdx, LogEntry{Status: StatusUnset})
}

func checkIndex(p *RunningPlan, weekIdx, dayIdx int) error {
	if p == nil {
		return fmt.Errorf("no plan")
	}
	if weekIdx < 0 || weekIdx >= len(p.Weeks) {
		return fmt.Errorf("week index %d out of range (plan has %d weeks)", weekIdx, len(p.Weeks))
	}
	if days := p.Weeks[weekIdx].DailyWorkouts; dayIdx < 0 || dayIdx >= len(days) {
		return fmt.Errorf("day index %d out of range (week %d has %d days)", dayIdx, weekIdx+1, len(days))
	}
	return nil
}
