// Package prompt builds the generation-service prompts and the structural
// response schema for plan generation.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Race is one of the supported race distances.
type Race struct {
	ID    string
	Name  string
	Miles float64
}

// Races are the distances the form offers, in display order.
var Races = []Race{
	{ID: "5k", Name: "5K", Miles: 3.1},
	{ID: "10k", Name: "10K", Miles: 6.2},
	{ID: "half-marathon", Name: "Half Marathon", Miles: 13.1},
	{ID: "marathon", Name: "Marathon", Miles: 26.2},
}

// RaceByID looks up a supported race distance.
func RaceByID(id string) (Race, bool) {
	for _, r := range Races {
		if r.ID == id {
			return r, true
		}
	}
	return Race{}, false
}

// Plan builds the plan-generation instruction. paceText is the runner's
// target pace already flattened to prose ("8 minutes and 30 seconds").
func Plan(race Race, paceText string, goalDate, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert running coach. Create a personalized training plan for a runner aiming to complete a %s.\n", race.Name)
	fmt.Fprintf(&b, "Their target race pace is %s per mile.\n", paceText)
	fmt.Fprintf(&b, "The runner's goal race is on %s.\n", goalDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Today's date is %s.\n\n", today.Format("2006-01-02"))

	b.WriteString("The plan should be structured weekly and start from today, leading up to the race date. ")
	b.WriteString("The first week must be a partial week that ends on the nearest Sunday; every subsequent week runs Monday through Sunday. ")
	b.WriteString("Ensure the plan gradually builds in intensity and mileage to prevent injury and have the runner peak for race day. ")
	b.WriteString("The total duration of the plan must fit within the timeframe from today to the goal date. ")
	b.WriteString("The final week should be a taper week.\n\n")

	b.WriteString("Provide clear, concise descriptions for each day's workout, including a mix of easy runs, long runs, speed work (like intervals or tempo runs), and rest days.")
	return b.String()
}

// PlanSchema is the Gemini responseSchema constraining the plan reply.
func PlanSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "title": {"type": "STRING", "description": "Catchy title for the training plan."},
    "introduction": {"type": "STRING", "description": "A brief, encouraging introduction to the plan."},
    "weeks": {
      "type": "ARRAY",
      "description": "An array of weekly training schedules.",
      "items": {
        "type": "OBJECT",
        "properties": {
          "weekNumber": {"type": "INTEGER", "description": "The week number, starting from 1."},
          "summary": {"type": "STRING", "description": "A short summary of the focus for this week."},
          "dailyWorkouts": {
            "type": "ARRAY",
            "description": "A list of workouts for each day of the week.",
            "items": {
              "type": "OBJECT",
              "properties": {
                "day": {"type": "STRING", "description": "The day of the week (e.g., 'Monday')."},
                "workout": {"type": "STRING", "description": "The specific workout for the day (e.g., '3 miles easy pace', 'Rest')."}
              },
              "required": ["day", "workout"]
            }
          }
        },
        "required": ["weekNumber", "summary", "dailyWorkouts"]
      }
    },
    "conclusion": {"type": "STRING", "description": "A final, motivational message for the runner."}
  },
  "required": ["title", "introduction", "weeks", "conclusion"]
}`)
}

// PaceText flattens a minutes+seconds target pace into the prose form
// embedded in the plan prompt.
func PaceText(minutes, seconds int) string {
	return fmt.Sprintf("%d minutes and %d seconds", minutes, seconds)
}

// PaceDisplay is the compact display form shown in the plan header.
func PaceDisplay(minutes, seconds int) string {
	return fmt.Sprintf("%d:%02d / mile", minutes, seconds)
}
