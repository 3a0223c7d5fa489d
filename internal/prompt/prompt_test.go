package prompt

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/briangreenhill/paceperfect/internal/plan"
)

func TestPlanPrompt(t *testing.T) {
	race, ok := RaceByID("10k")
	if !ok {
		t.Fatal("10k should be a known race")
	}

	goal := time.Date(2025, time.October, 12, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	p := Plan(race, PaceText(8, 30), goal, today)

	for _, want := range []string{
		"10K",
		"8 minutes and 30 seconds",
		"2025-10-12",
		"2025-08-01",
		"ends on the nearest Sunday",
		"Monday through Sunday",
		"taper week",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("plan prompt missing %q", want)
		}
	}
}

func TestPlanSchemaIsValidJSON(t *testing.T) {
	var schema map[string]any
	if err := json.Unmarshal(PlanSchema(), &schema); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatal("schema has no properties")
	}
	for _, field := range []string{"title", "introduction", "weeks", "conclusion"} {
		if _, ok := props[field]; !ok {
			t.Errorf("schema missing %q", field)
		}
	}
}

func TestRaceByIDUnknown(t *testing.T) {
	if _, ok := RaceByID("ultra"); ok {
		t.Error("unknown race id should not resolve")
	}
}

func feedbackPlan() *plan.RunningPlan {
	dist := 3.0
	mins := 27
	secs := 30
	notes := "legs heavy"
	return &plan.RunningPlan{
		Title:      "Road to 10K",
		TargetPace: "8:30 / mile",
		Weeks: []plan.WeeklyPlan{
			{WeekNumber: 1, Summary: "Base", DailyWorkouts: []plan.DailyWorkout{
				{Day: "Friday", Workout: "3 miles easy", Status: plan.StatusCompleted,
					DistanceMiles: &dist, TimeMinutes: &mins, TimeSeconds: &secs, ActualNotes: &notes},
				{Day: "Saturday", Workout: "Rest", Status: plan.StatusSkipped},
				{Day: "Sunday", Workout: "4 miles easy"},
			}},
			{WeekNumber: 2, Summary: "Build", DailyWorkouts: []plan.DailyWorkout{
				{Day: "Monday", Workout: "Intervals"},
			}},
		},
	}
}

func TestPerformanceSummary(t *testing.T) {
	s := PerformanceSummary(feedbackPlan(), 1)

	for _, want := range []string{
		"Week 1 (Base):",
		"3 miles easy — completed, 3.0 miles in 27:30 (9:10 / mile)",
		"Notes: legs heavy",
		"Rest — skipped",
		"4 miles easy — not logged",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q in:\n%s", want, s)
		}
	}
	if strings.Contains(s, "Week 2") {
		t.Error("summary must only cover weeks before weekIndex")
	}
	// Absent optionals must never surface as literal placeholder words.
	for _, not := range []string{"nil", "<nil>", "undefined"} {
		if strings.Contains(s, not) {
			t.Errorf("summary leaked %q", not)
		}
	}
}

func TestFeedbackPrompt(t *testing.T) {
	f := Feedback(feedbackPlan(), 1)

	for _, want := range []string{
		"Road to 10K",
		"upcoming week 2",
		"Intervals",
		"overall insight",
		"bulleted observations",
		"advice for the upcoming week",
	} {
		if !strings.Contains(f, want) {
			t.Errorf("feedback prompt missing %q", want)
		}
	}
}
