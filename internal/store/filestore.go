package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/paceperfect/internal/plan"
)

// FileStore keeps the snapshot as two small files in a data directory.
type FileStore struct {
	dir string
	log zerolog.Logger
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string, log zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (fs *FileStore) Save(_ context.Context, p *plan.RunningPlan, startDate time.Time) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := fs.writeAtomic(keyPlan, data); err != nil {
		return err
	}
	return fs.writeAtomic(keyStartDate, []byte(startDate.Format(startDateFormat)))
}

func (fs *FileStore) Load(_ context.Context) (*plan.RunningPlan, time.Time, bool) {
	planData, err := os.ReadFile(fs.path(keyPlan))
	if err != nil {
		return nil, time.Time{}, false
	}
	dateData, err := os.ReadFile(fs.path(keyStartDate))
	if err != nil {
		fs.discard("plan entry present but start date missing")
		return nil, time.Time{}, false
	}

	var p plan.RunningPlan
	if err := json.Unmarshal(planData, &p); err != nil {
		fs.discard("stored plan is not valid JSON")
		return nil, time.Time{}, false
	}
	startDate, err := time.Parse(startDateFormat, strings.TrimSpace(string(dateData)))
	if err != nil {
		fs.discard("stored start date is unreadable")
		return nil, time.Time{}, false
	}
	return &p, startDate, true
}

func (fs *FileStore) Clear(_ context.Context) error {
	var firstErr error
	for _, key := range []string{keyPlan, keyStartDate} {
		if err := os.Remove(fs.path(key)); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// discard removes both entries after a corruption; losing the saved session
// is the intended outcome, not a failure.
func (fs *FileStore) discard(reason string) {
	fs.log.Warn().Str("reason", reason).Msg("discarding stored snapshot")
	_ = os.Remove(fs.path(keyPlan))
	_ = os.Remove(fs.path(keyStartDate))
}

// writeAtomic writes to a temporary file first, then renames.
func (fs *FileStore) writeAtomic(key string, data []byte) error {
	path := fs.path(key)
	tmpPath := path + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, fileNames[key])
}
