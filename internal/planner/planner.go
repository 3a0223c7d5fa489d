// Package planner turns user goals and logged progress into generation
// service requests and validated domain values.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/paceperfect/internal/genai"
	"github.com/briangreenhill/paceperfect/internal/plan"
	"github.com/briangreenhill/paceperfect/internal/prompt"
)

// TextGenerator is the slice of the genai client the planner needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, req genai.Request) (string, error)
}

// ErrGeneration is the single retryable user-facing message for any plan
// generation failure. No partial plan is ever surfaced.
var ErrGeneration = fmt.Errorf("failed to generate a training plan, try again")

const planTemperature = 0.7

type Planner struct {
	gen TextGenerator
	log zerolog.Logger
}

func New(gen TextGenerator, log zerolog.Logger) *Planner {
	return &Planner{gen: gen, log: log}
}

// PlanRequest is the validated form input for plan generation.
type PlanRequest struct {
	Race        prompt.Race
	PaceMinutes int
	PaceSeconds int
	GoalDate    time.Time
	Today       time.Time
}

// RequestPlan asks the generation service for a structured plan. Transport
// failures, malformed replies and schema-violating plans all collapse into
// ErrGeneration; details go to the log only.
func (p *Planner) RequestPlan(ctx context.Context, req PlanRequest) (*plan.RunningPlan, error) {
	text := prompt.Plan(req.Race, prompt.PaceText(req.PaceMinutes, req.PaceSeconds), req.GoalDate, req.Today)

	raw, err := p.gen.GenerateText(ctx, genai.Request{
		Prompt:         text,
		Temperature:    planTemperature,
		ResponseSchema: prompt.PlanSchema(),
	})
	if err != nil {
		p.log.Error().Err(err).Msg("plan generation request failed")
		return nil, ErrGeneration
	}

	generated, err := ParsePlan(raw)
	if err != nil {
		p.log.Error().Err(err).Msg("plan generation returned an unusable plan")
		return nil, ErrGeneration
	}
	generated.TargetPace = prompt.PaceDisplay(req.PaceMinutes, req.PaceSeconds)
	return generated, nil
}

// ParsePlan decodes and validates a generation-service plan reply. The
// caller-supplied pace display is attached by RequestPlan, not here.
func ParsePlan(raw string) (*plan.RunningPlan, error) {
	var generated plan.RunningPlan
	if err := json.Unmarshal([]byte(genai.StripFences(raw)), &generated); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if err := generated.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	generated.ID = uuid.New()
	return &generated, nil
}
