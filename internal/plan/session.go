package plan

import "time"

// Session is the single mutable root of application state. The plan and its
// start date are the only durable part; feedback and in-flight markers are
// session-only and lost on restart by design.
//
// The HTTP layer owns the one live Session and guards it with its own mutex;
// nothing here is safe for unsynchronized concurrent use.
type Session struct {
	Plan           *RunningPlan
	StartDate      time.Time
	FeedbackByWeek map[int]string
	// FeedbackLoadingWeek is the week index of the one feedback request
	// allowed in flight, nil when none is.
	FeedbackLoadingWeek *int
	// Generating is set while a plan-generation request is in flight.
	Generating bool
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{FeedbackByWeek: make(map[int]string)}
}

// HasPlan reports whether a plan is loaded.
func (s *Session) HasPlan() bool {
	return s.Plan != nil
}

// ReplacePlan installs a freshly generated plan, discarding all feedback and
// logged state from any previous plan.
func (s *Session) ReplacePlan(p *RunningPlan, startDate time.Time) {
	s.Plan = p
	s.StartDate = startDate
	s.FeedbackByWeek = make(map[int]string)
	s.FeedbackLoadingWeek = nil
}

// Reset clears the session entirely.
func (s *Session) Reset() {
	s.Plan = nil
	s.StartDate = time.Time{}
	s.FeedbackByWeek = make(map[int]string)
	s.FeedbackLoadingWeek = nil
	s.Generating = false
}
