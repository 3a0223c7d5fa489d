// Package store persists the current plan and its start date as a snapshot
// of two named entries, "plan" and "start_date". Both are written and read
// together; a corrupted or half-missing snapshot is discarded and reported
// as absent, never as an error.
package store

import (
	"context"
	"time"

	"github.com/briangreenhill/paceperfect/internal/plan"
)

const (
	keyPlan      = "plan"
	keyStartDate = "start_date"
)

// fileNames maps entry keys to on-disk names for the file store.
var fileNames = map[string]string{
	keyPlan:      "plan.json",
	keyStartDate: "start_date",
}

// startDateFormat is the ISO calendar date of the plan's first day.
const startDateFormat = "2006-01-02"

// Snapshots is the persistence adapter the HTTP layer works against.
type Snapshots interface {
	// Save writes the plan and start date as one best-effort operation.
	Save(ctx context.Context, p *plan.RunningPlan, startDate time.Time) error
	// Load reads them back; ok is false when nothing usable is stored.
	Load(ctx context.Context) (p *plan.RunningPlan, startDate time.Time, ok bool)
	// Clear removes any stored snapshot.
	Clear(ctx context.Context) error
}
