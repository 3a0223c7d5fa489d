package routes

import (
	"net/http"

	"github.com/briangreenhill/paceperfect/internal/plan"
	"github.com/briangreenhill/paceperfect/internal/planner"
	"github.com/briangreenhill/paceperfect/internal/prompt"
)

// HomeView is everything the home template needs: the goal form, the dated
// plan (when one exists) and the two error flashes.
type HomeView struct {
	Title         string
	Races         []prompt.Race
	MinGoalDate   string
	PlanError     string
	FeedbackError string
	Generating    bool
	Plan          *PlanView
}

// PlanView is the rendered plan with calendar dates attached.
type PlanView struct {
	ID           string
	Title        string
	Introduction string
	TargetPace   string
	Conclusion   string
	Weeks        []WeekView
}

type WeekView struct {
	Index           int
	Number          int
	Summary         string
	DateRange       string
	Days            []DayView
	Feedback        string
	FeedbackAllowed bool
	FeedbackLoading bool
}

type DayView struct {
	Index    int
	Label    string
	Date     string
	Workout  string
	Status   plan.Status
	Notes    string
	Distance *float64
	Minutes  *int
	Seconds  *int
	Pace     string
}

// displayDate matches the compact "Mar 5" style the plan view uses.
const displayDate = "Jan 2"

// buildHomeView assembles the page model. Caller holds s.mu.
func (s *Server) buildHomeView(r *http.Request) HomeView {
	view := HomeView{
		Title:         "PacePerfect",
		Races:         prompt.Races,
		MinGoalDate:   s.today().Format(dateFormat),
		PlanError:     s.Sess.PopString(r.Context(), flashPlanError),
		FeedbackError: s.Sess.PopString(r.Context(), flashFeedbackError),
		Generating:    s.session.Generating,
	}
	if !s.session.HasPlan() {
		return view
	}

	p := s.session.Plan
	pv := &PlanView{
		ID:           p.ID.String(),
		Title:        p.Title,
		Introduction: p.Introduction,
		TargetPace:   p.TargetPace,
		Conclusion:   p.Conclusion,
	}

	for _, wd := range plan.Layout(p.Weeks, s.session.StartDate) {
		wv := WeekView{
			Index:           wd.Index,
			Number:          wd.Week.WeekNumber,
			Summary:         wd.Week.Summary,
			DateRange:       wd.Start.Format(displayDate) + " - " + wd.End.Format(displayDate),
			Feedback:        s.session.FeedbackByWeek[wd.Index],
			FeedbackAllowed: planner.FeedbackEligible(p, wd.Index) && s.session.FeedbackLoadingWeek == nil,
			FeedbackLoading: s.session.FeedbackLoadingWeek != nil && *s.session.FeedbackLoadingWeek == wd.Index,
		}
		for _, dd := range wd.Days {
			wv.Days = append(wv.Days, dayView(dd))
		}
		pv.Weeks = append(pv.Weeks, wv)
	}

	view.Plan = pv
	return view
}

func dayView(dd plan.DayDate) DayView {
	dv := DayView{
		Index:    dd.Index,
		Label:    dd.Workout.Day,
		Date:     dd.Date.Format(displayDate),
		Workout:  dd.Workout.Workout,
		Status:   dd.Workout.Status,
		Distance: dd.Workout.DistanceMiles,
		Minutes:  dd.Workout.TimeMinutes,
		Seconds:  dd.Workout.TimeSeconds,
	}
	if dd.Workout.ActualNotes != nil {
		dv.Notes = *dd.Workout.ActualNotes
	}
	if pace, ok := plan.DayPace(dd.Workout); ok {
		dv.Pace = pace + " / mile"
	}
	return dv
}
