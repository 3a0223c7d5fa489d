package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/paceperfect/internal/plan"
)

// PGStore keeps the snapshot in a single key-value table. Selected when
// DATABASE_URL is configured.
type PGStore struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS snapshots (
    key   text PRIMARY KEY,
    value text NOT NULL
)`

// NewPGStore connects and ensures the snapshots table exists.
func NewPGStore(ctx context.Context, databaseURL string, log zerolog.Logger) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, createSnapshotsTable); err != nil {
		pool.Close()
		return nil, err
	}
	return &PGStore{pool: pool, log: log}, nil
}

// Close releases the connection pool.
func (ps *PGStore) Close() {
	ps.pool.Close()
}

func (ps *PGStore) Save(ctx context.Context, p *plan.RunningPlan, startDate time.Time) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	// Both entries go in one transaction so they stay present-or-absent
	// together.
	return pgx.BeginFunc(ctx, ps.pool, func(tx pgx.Tx) error {
		for key, value := range map[string]string{
			keyPlan:      string(data),
			keyStartDate: startDate.Format(startDateFormat),
		} {
			if _, err := tx.Exec(ctx,
				`INSERT INTO snapshots (key, value) VALUES ($1, $2)
				 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
				key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (ps *PGStore) Load(ctx context.Context) (*plan.RunningPlan, time.Time, bool) {
	planText, ok := ps.get(ctx, keyPlan)
	if !ok {
		return nil, time.Time{}, false
	}
	dateText, ok := ps.get(ctx, keyStartDate)
	if !ok {
		ps.discard(ctx, "plan entry present but start date missing")
		return nil, time.Time{}, false
	}

	var p plan.RunningPlan
	if err := json.Unmarshal([]byte(planText), &p); err != nil {
		ps.discard(ctx, "stored plan is not valid JSON")
		return nil, time.Time{}, false
	}
	startDate, err := time.Parse(startDateFormat, strings.TrimSpace(dateText))
	if err != nil {
		ps.discard(ctx, "stored start date is unreadable")
		return nil, time.Time{}, false
	}
	return &p, startDate, true
}

func (ps *PGStore) Clear(ctx context.Context) error {
	_, err := ps.pool.Exec(ctx, `DELETE FROM snapshots WHERE key = ANY($1)`,
		[]string{keyPlan, keyStartDate})
	return err
}

func (ps *PGStore) get(ctx context.Context, key string) (string, bool) {
	var value string
	err := ps.pool.QueryRow(ctx, `SELECT value FROM snapshots WHERE key = $1`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

func (ps *PGStore) discard(ctx context.Context, reason string) {
	ps.log.Warn().Str("reason", reason).Msg("discarding stored snapshot")
	if err := ps.Clear(ctx); err != nil {
		ps.log.Warn().Err(err).Msg("could not clear corrupted snapshot")
	}
}
