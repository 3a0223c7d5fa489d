package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/paceperfect/internal/genai"
	"github.com/briangreenhill/paceperfect/internal/plan"
	"github.com/briangreenhill/paceperfect/internal/prompt"
)

// fakeGen records calls and plays back a canned reply.
type fakeGen struct {
	calls   int
	lastReq genai.Request
	reply   string
	err     error
}

func (f *fakeGen) GenerateText(_ context.Context, req genai.Request) (string, error) {
	f.calls++
	f.lastReq = req
	return f.reply, f.err
}

const validPlanJSON = `{
  "title": "Road to 10K",
  "introduction": "Let's get moving.",
  "weeks": [
    {"weekNumber": 1, "summary": "Base", "dailyWorkouts": [
      {"day": "Friday", "workout": "3 miles easy"},
      {"day": "Saturday", "workout": "Rest"},
      {"day": "Sunday", "workout": "4 miles easy"}
    ]},
    {"weekNumber": 2, "summary": "Build", "dailyWorkouts": [
      {"day": "Monday", "workout": "Intervals"},
      {"day": "Tuesday", "workout": "Rest"},
      {"day": "Wednesday", "workout": "Tempo"},
      {"day": "Thursday", "workout": "Rest"},
      {"day": "Friday", "workout": "3 miles easy"},
      {"day": "Saturday", "workout": "Rest"},
      {"day": "Sunday", "workout": "Long run"}
    ]}
  ],
  "conclusion": "See you at the finish line."
}`

func testRequest(t *testing.T) PlanRequest {
	t.Helper()
	race, ok := prompt.RaceByID("10k")
	require.True(t, ok)
	return PlanRequest{
		Race:        race,
		PaceMinutes: 8,
		PaceSeconds: 30,
		GoalDate:    time.Date(2025, time.October, 12, 0, 0, 0, 0, time.UTC),
		Today:       time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRequestPlan(t *testing.T) {
	gen := &fakeGen{reply: validPlanJSON}
	p := New(gen, zerolog.Nop())

	got, err := p.RequestPlan(context.Background(), testRequest(t))
	require.NoError(t, err)
	require.Equal(t, "Road to 10K", got.Title)
	require.Len(t, got.Weeks, 2)
	require.Equal(t, "8:30 / mile", got.TargetPace)
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", got.ID.String())

	require.Equal(t, 1, gen.calls)
	require.NotNil(t, gen.lastReq.ResponseSchema)
	require.InDelta(t, 0.7, gen.lastReq.Temperature, 0.001)
}

func TestRequestPlanFencedReply(t *testing.T) {
	gen := &fakeGen{reply: "```json\n" + validPlanJSON + "\n```"}
	p := New(gen, zerolog.Nop())

	got, err := p.RequestPlan(context.Background(), testRequest(t))
	require.NoError(t, err)
	require.Equal(t, "Road to 10K", got.Title)
}

func TestRequestPlanFailure(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"transport error", "", errors.New("connection refused")},
		{"malformed json", "not json at all", nil},
		{"schema violation", `{"title":"x","introduction":"y","weeks":[],"conclusion":"z"}`, nil},
		{"bad week numbers", `{"title":"x","introduction":"y","weeks":[{"weekNumber":5,"summary":"s","dailyWorkouts":[{"day":"Mon","workout":"run"}]}],"conclusion":"z"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGen{reply: tt.reply, err: tt.err}
			p := New(gen, zerolog.Nop())

			got, err := p.RequestPlan(context.Background(), testRequest(t))
			require.Nil(t, got, "no partial plan may surface")
			require.ErrorIs(t, err, ErrGeneration)
		})
	}
}

func loggedPlan(t *testing.T) *plan.RunningPlan {
	t.Helper()
	p, err := ParsePlan(validPlanJSON)
	require.NoError(t, err)
	updated, err := plan.UpdateDay(p, 0, 0, plan.LogEntry{Status: plan.StatusCompleted})
	require.NoError(t, err)
	return updated
}

func TestRequestFeedbackPlaceholderNoNetwork(t *testing.T) {
	gen := &fakeGen{reply: "should never be used"}
	p := New(gen, zerolog.Nop())

	unlogged, err := ParsePlan(validPlanJSON)
	require.NoError(t, err)

	// Week 0 never gets feedback.
	text, err := p.RequestFeedback(context.Background(), loggedPlan(t), 0)
	require.NoError(t, err)
	require.Equal(t, FeedbackPlaceholder, text)

	// Week 1 with nothing logged in week 0 gets the placeholder too.
	text, err = p.RequestFeedback(context.Background(), unlogged, 1)
	require.NoError(t, err)
	require.Equal(t, FeedbackPlaceholder, text)

	// Out-of-range week index.
	text, err = p.RequestFeedback(context.Background(), loggedPlan(t), 5)
	require.NoError(t, err)
	require.Equal(t, FeedbackPlaceholder, text)

	require.Equal(t, 0, gen.calls, "placeholder paths must not call the service")
}

func TestRequestFeedbackVerbatim(t *testing.T) {
	gen := &fakeGen{reply: "Great first week! Keep the easy days easy."}
	p := New(gen, zerolog.Nop())

	text, err := p.RequestFeedback(context.Background(), loggedPlan(t), 1)
	require.NoError(t, err)
	require.Equal(t, "Great first week! Keep the easy days easy.", text)
	require.Equal(t, 1, gen.calls)
	require.Nil(t, gen.lastReq.ResponseSchema, "feedback is freeform text")
}

func TestRequestFeedbackFailure(t *testing.T) {
	gen := &fakeGen{err: errors.New("overloaded")}
	p := New(gen, zerolog.Nop())

	_, err := p.RequestFeedback(context.Background(), loggedPlan(t), 1)
	require.ErrorIs(t, err, ErrFeedback)
}

func TestFeedbackEligible(t *testing.T) {
	require.False(t, FeedbackEligible(nil, 1))
	require.False(t, FeedbackEligible(loggedPlan(t), 0))
	require.True(t, FeedbackEligible(loggedPlan(t), 1))

	unlogged, err := ParsePlan(validPlanJSON)
	require.NoError(t, err)
	require.False(t, FeedbackEligible(unlogged, 1))

	// A skipped day still counts as logged.
	skipped, err := plan.UpdateDay(unlogged, 0, 1, plan.LogEntry{Status: plan.StatusSkipped})
	require.NoError(t, err)
	require.True(t, FeedbackEligible(skipped, 1))
}
