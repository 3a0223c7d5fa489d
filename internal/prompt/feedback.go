package prompt

import (
	"fmt"
	"strings"

	"github.com/briangreenhill/paceperfect/internal/plan"
)

// Feedback builds the coaching-feedback prompt for the week at weekIndex.
// The caller has already checked eligibility (weekIndex > 0 with at least
// one logged day before it).
func Feedback(p *plan.RunningPlan, weekIndex int) string {
	var b strings.Builder
	b.WriteString("You are an expert running coach reviewing a runner's training log. ")
	fmt.Fprintf(&b, "The runner is following a plan titled %q with a target race pace of %s per mile.\n\n", p.Title, p.TargetPace)

	b.WriteString("Here is their logged performance so far:\n\n")
	b.WriteString(PerformanceSummary(p, weekIndex))

	fmt.Fprintf(&b, "\nHere is the plan for the upcoming week %d:\n", p.Weeks[weekIndex].WeekNumber)
	for _, d := range p.Weeks[weekIndex].DailyWorkouts {
		fmt.Fprintf(&b, "- %s: %s\n", d.Day, d.Workout)
	}

	b.WriteString("\nSpeak directly to the runner. Give them:\n")
	b.WriteString("1. An overall insight into how their training is going.\n")
	b.WriteString("2. A few bulleted observations about specific workouts they logged.\n")
	b.WriteString("3. Focused advice for the upcoming week based on what they have done so far.\n")
	b.WriteString("\nKeep it encouraging, specific and concise.")
	return b.String()
}

// PerformanceSummary flattens every logged day strictly before weekIndex
// into plain text for the feedback prompt. Optional fields are spelled out
// or omitted here; an absent value never leaks into the text as a literal.
func PerformanceSummary(p *plan.RunningPlan, weekIndex int) string {
	var b strings.Builder
	for w := 0; w < weekIndex && w < len(p.Weeks); w++ {
		week := p.Weeks[w]
		fmt.Fprintf(&b, "Week %d (%s):\n", week.WeekNumber, week.Summary)
		for _, d := range week.DailyWorkouts {
			fmt.Fprintf(&b, "- %s, planned: %s", d.Day, d.Workout)
			switch d.Status {
			case plan.StatusCompleted:
				b.WriteString(" — completed")
				if d.DistanceMiles != nil {
					fmt.Fprintf(&b, ", %.1f miles", *d.DistanceMiles)
				}
				if mins, secs, ok := loggedTime(d); ok {
					fmt.Fprintf(&b, " in %d:%02d", mins, secs)
				}
				if pace, ok := plan.DayPace(d); ok {
					fmt.Fprintf(&b, " (%s / mile)", pace)
				}
				if d.ActualNotes != nil && *d.ActualNotes != "" {
					fmt.Fprintf(&b, ". Notes: %s", *d.ActualNotes)
				}
			case plan.StatusSkipped:
				b.WriteString(" — skipped")
			default:
				b.WriteString(" — not logged")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func loggedTime(d plan.DailyWorkout) (mins, secs int, ok bool) {
	if d.TimeMinutes == nil && d.TimeSeconds == nil {
		return 0, 0, false
	}
	if d.TimeMinutes != nil {
		mins = *d.TimeMinutes
	}
	if d.TimeSeconds != nil {
		secs = *d.TimeSeconds
	}
	return mins, secs, true
}
