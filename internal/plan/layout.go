package plan

import "time"

// DayDate pairs a workout slot with the concrete date it lands on. Dates are
// computed from position within the week; the Day label the generation
// service supplies is advisory only and never consulted.
type DayDate struct {
	Workout DailyWorkout
	Date    time.Time
	Index   int
}

// WeekDates is one week of the schedule placed on the calendar.
type WeekDates struct {
	Week  WeeklyPlan
	Index int
	Start time.Time
	End   time.Time
	Days  []DayDate
}

// Layout maps the plan's weeks onto concrete dates starting at startDate.
//
// Week lengths are data-driven: a cursor starts at startDate, each week
// spans len(DailyWorkouts) consecutive days from the cursor, and the cursor
// moves to the day after the week's end before the next week is placed.
// This is what makes a partial first week (ending on a Sunday, say) line up
// correctly; assuming fixed 7-day blocks silently mis-dates every week after
// a short one. Weeks with no workouts are dropped from the output and leave
// the cursor where it is.
func Layout(weeks []WeeklyPlan, startDate time.Time) []WeekDates {
	cursor := startDate
	out := make([]WeekDates, 0, len(weeks))
	for i, w := range weeks {
		n := len(w.DailyWorkouts)
		if n == 0 {
			continue
		}
		wd := WeekDates{
			Week:  w,
			Index: i,
			Start: cursor,
			End:   cursor.AddDate(0, 0, n-1),
			Days:  make([]DayDate, n),
		}
		for j, d := range w.DailyWorkouts {
			wd.Days[j] = DayDate{Workout: d, Date: cursor.AddDate(0, 0, j), Index: j}
		}
		out = append(out, wd)
		cursor = wd.End.AddDate(0, 0, 1)
	}
	return out
}
