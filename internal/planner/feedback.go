package planner

import (
	"context"
	"fmt"

	"github.com/briangreenhill/paceperfect/internal/genai"
	"github.com/briangreenhill/paceperfect/internal/plan"
	"github.com/briangreenhill/paceperfect/internal/prompt"
)

// FeedbackPlaceholder is returned when a week is not yet eligible for
// feedback. No network call is made in that case.
const FeedbackPlaceholder = "Log at least one workout from the previous week to get coaching feedback."

const feedbackTemperature = 0.6

// ErrFeedback is the user-facing message for a failed feedback request. It
// is scoped to one week's feedback slot and never disturbs the plan.
var ErrFeedback = fmt.Errorf("failed to generate feedback for this week, try again")

// FeedbackEligible reports whether the week at weekIndex can get feedback:
// a week must exist before it, and that prior week needs at least one
// logged day.
func FeedbackEligible(p *plan.RunningPlan, weekIndex int) bool {
	if p == nil || weekIndex <= 0 || weekIndex >= len(p.Weeks) {
		return false
	}
	for _, d := range p.Weeks[weekIndex-1].DailyWorkouts {
		if d.Logged() {
			return true
		}
	}
	return false
}

// RequestFeedback returns coaching feedback for the week at weekIndex, or
// the placeholder when the week is not eligible. The model's text comes
// back verbatim.
func (p *Planner) RequestFeedback(ctx context.Context, rp *plan.RunningPlan, weekIndex int) (string, error) {
	if !FeedbackEligible(rp, weekIndex) {
		return FeedbackPlaceholder, nil
	}

	text, err := p.gen.GenerateText(ctx, genai.Request{
		Prompt:      prompt.Feedback(rp, weekIndex),
		Temperature: feedbackTemperature,
	})
	if err != nil {
		p.log.Error().Err(err).Int("week", weekIndex).Msg("feedback request failed")
		return "", ErrFeedback
	}
	return text, nil
}
