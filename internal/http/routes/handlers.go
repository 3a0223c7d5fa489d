package routes

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/briangreenhill/paceperfect/internal/plan"
	"github.com/briangreenhill/paceperfect/internal/planner"
	"github.com/briangreenhill/paceperfect/internal/prompt"
)

const dateFormat = "2006-01-02"

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	view := s.buildHomeView(r)
	s.mu.Unlock()
	s.render(w, "home", view)
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	req, err := s.parsePlanForm(r)
	if err != nil {
		s.Sess.Put(r.Context(), flashPlanError, err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Only one generation may be in flight; the form disables its button,
	// this is the backstop.
	s.mu.Lock()
	if s.session.Generating {
		s.mu.Unlock()
		s.Sess.Put(r.Context(), flashPlanError, "a plan is already being generated, hang tight")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.session.Generating = true
	s.mu.Unlock()

	generated, genErr := s.Planner.RequestPlan(r.Context(), req)

	s.mu.Lock()
	s.session.Generating = false
	if genErr == nil {
		s.session.ReplacePlan(generated, req.Today)
		if err := s.Store.Save(r.Context(), generated, req.Today); err != nil {
			s.Log.Error().Err(err).Msg("save snapshot after generation")
		}
	}
	s.mu.Unlock()

	if genErr != nil {
		s.Sess.Put(r.Context(), flashPlanError, genErr.Error())
	} else {
		s.Log.Info().Str("plan_id", generated.ID.String()).Int("weeks", len(generated.Weeks)).Msg("plan generated")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parsePlanForm validates the goal form: a known race, a goal date no
// earlier than today, and both pace fields.
func (s *Server) parsePlanForm(r *http.Request) (planner.PlanRequest, error) {
	var req planner.PlanRequest

	race, ok := prompt.RaceByID(strings.TrimSpace(r.Form.Get("race")))
	if !ok {
		return req, errFormField("choose a race distance")
	}

	goalDate, err := time.Parse(dateFormat, strings.TrimSpace(r.Form.Get("goal_date")))
	if err != nil {
		return req, errFormField("choose a goal date")
	}
	today := s.today()
	if goalDate.Before(today) {
		return req, errFormField("goal date must not be in the past")
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("pace_minutes")))
	if err != nil || minutes < 0 || minutes > 60 {
		return req, errFormField("target pace minutes must be between 0 and 60")
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("pace_seconds")))
	if err != nil || seconds < 0 || seconds > 59 {
		return req, errFormField("target pace seconds must be between 0 and 59")
	}
	if minutes == 0 && seconds == 0 {
		return req, errFormField("set a target pace")
	}

	req.Race = race
	req.PaceMinutes = minutes
	req.PaceSeconds = seconds
	req.GoalDate = goalDate
	req.Today = today
	return req, nil
}

func (s *Server) handleResetPlan(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.session.Reset()
	s.mu.Unlock()

	if err := s.Store.Clear(r.Context()); err != nil {
		s.Log.Error().Err(err).Msg("clear stored snapshot")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogDay(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	entry, err := parseLogForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mutateDay(w, r, func(p *plan.RunningPlan, week, day int) (*plan.RunningPlan, error) {
		return plan.UpdateDay(p, week, day, entry)
	})
}

func (s *Server) handleClearDay(w http.ResponseWriter, r *http.Request) {
	s.mutateDay(w, r, plan.ClearDay)
}

// mutateDay runs one copy-on-write day mutation against the current plan and
// persists the result. The plan ID in the URL must match the live plan, so a
// submission from a stale page conflicts instead of hitting the wrong slot.
func (s *Server) mutateDay(w http.ResponseWriter, r *http.Request,
	mutate func(p *plan.RunningPlan, week, day int) (*plan.RunningPlan, error)) {

	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		http.Error(w, "invalid week index", http.StatusBadRequest)
		return
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		http.Error(w, "invalid day index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if !s.session.HasPlan() {
		s.mu.Unlock()
		http.Error(w, "no plan", http.StatusNotFound)
		return
	}
	if s.session.Plan.ID.String() != chi.URLParam(r, "planID") {
		s.mu.Unlock()
		http.Error(w, "plan has changed, reload the page", http.StatusConflict)
		return
	}

	updated, err := mutate(s.session.Plan, week, day)
	if err != nil {
		s.mu.Unlock()
		s.Log.Error().Err(err).Int("week", week).Int("day", day).Msg("day mutation rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.session.Plan = updated
	startDate := s.session.StartDate
	s.mu.Unlock()

	// Best effort; a failed save costs durability, not the mutation.
	if err := s.Store.Save(r.Context(), updated, startDate); err != nil {
		s.Log.Error().Err(err).Msg("save snapshot after log update")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parseLogForm reads one day's outcome. Actual-performance fields are only
// meaningful for completed days; UpdateDay drops them otherwise.
func parseLogForm(r *http.Request) (plan.LogEntry, error) {
	var entry plan.LogEntry

	status := plan.Status(r.Form.Get("status"))
	if !status.Valid() || status == plan.StatusUnset {
		return entry, errFormField("status must be completed or skipped")
	}
	entry.Status = status

	if v := strings.TrimSpace(r.Form.Get("notes")); v != "" {
		entry.ActualNotes = &v
	}
	if v := strings.TrimSpace(r.Form.Get("distance_miles")); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return entry, errFormField("distance must be a number")
		}
		entry.DistanceMiles = &d
	}
	if v := strings.TrimSpace(r.Form.Get("time_minutes")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return entry, errFormField("minutes must be a whole number")
		}
		entry.TimeMinutes = &m
	}
	if v := strings.TrimSpace(r.Form.Get("time_seconds")); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil {
			return entry, errFormField("seconds must be a whole number")
		}
		entry.TimeSeconds = &sec
	}
	return entry, nil
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		http.Error(w, "invalid week index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if !s.session.HasPlan() {
		s.mu.Unlock()
		http.Error(w, "no plan", http.StatusNotFound)
		return
	}
	if s.session.Plan.ID.String() != chi.URLParam(r, "planID") {
		s.mu.Unlock()
		http.Error(w, "plan has changed, reload the page", http.StatusConflict)
		return
	}
	if s.session.FeedbackLoadingWeek != nil {
		s.mu.Unlock()
		s.Sess.Put(r.Context(), flashFeedbackError, "another feedback request is still running")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.session.FeedbackLoadingWeek = &week
	current := s.session.Plan
	s.mu.Unlock()

	text, fbErr := s.Planner.RequestFeedback(r.Context(), current, week)

	s.mu.Lock()
	s.session.FeedbackLoadingWeek = nil
	if fbErr == nil {
		s.session.FeedbackByWeek[week] = text
	}
	s.mu.Unlock()

	// A feedback failure is its own dismissible channel; the plan and any
	// other week's feedback stay untouched.
	if fbErr != nil {
		s.Sess.Put(r.Context(), flashFeedbackError, fbErr.Error())
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// today returns the current calendar date, truncated to midnight UTC.
func (s *Server) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

type formError string

func (e formError) Error() string { return string(e) }

func errFormField(msg string) error { return formError(msg) }
