// Package journal records generator runs in a sqlite history database.
package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/lcapgen/db"
	"github.com/teranos/lcapgen/errors"
)

// Run statuses
const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusInterrupted = "interrupted"
)

// Component statuses
const (
	ComponentGenerated = "generated"
	ComponentFailed    = "failed"
)

// Trigger names what started a run
const (
	TriggerGenerate = "generate"
	TriggerWatch    = "watch"
)

// RunInfo describes a run as it starts
type RunInfo struct {
	Framework string
	Input     string
	Root      string
	Trigger   string
}

// Run is one recorded run
type Run struct {
	ID         string     `json:"id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Framework  string     `json:"framework"`
	Input      string     `json:"input"`
	Root       string     `json:"root"`
	Trigger    string     `json:"trigger"`
	Status     string     `json:"status"`
	Total      int        `json:"total"`
	Succeeded  int        `json:"succeeded"`
	Failed     int        `json:"failed"`
}

// Entry is one component processed in a run
type Entry struct {
	Name       string `json:"name"`
	CompName   string `json:"comp_name"`
	TagName    string `json:"tag_name"`
	Folder     string `json:"folder"`
	Status     string `json:"status"`
	Registered bool   `json:"registered"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Summary closes a run
type Summary struct {
	Status    string
	Total     int
	Succeeded int
	Failed    int
}

// Journal writes run history
type Journal struct {
	db  *sql.DB
	log *zap.SugaredLogger
	now func() time.Time
}

// Open opens (creating if needed) the journal database at path
func Open(path string, log *zap.SugaredLogger) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create journal directory for %s", path)
	}
	conn, err := db.OpenWithMigrations(path, log)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "failed to open run journal"),
			"set journal.enabled = false in lcapgen.toml to run without history")
	}
	return New(conn, log), nil
}

// New wraps an already migrated database
func New(conn *sql.DB, log *zap.SugaredLogger) *Journal {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Journal{db: conn, log: log, now: time.Now}
}

// Close closes the underlying database
func (j *Journal) Close() error {
	return j.db.Close()
}

// timeLayout is fixed width so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// BeginRun inserts a running run and returns its id
func (j *Journal) BeginRun(ctx context.Context, info RunInfo) (string, error) {
	id := uuid.NewString()
	trigger := info.Trigger
	if trigger == "" {
		trigger = TriggerGenerate
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, framework, input, root, trigger, status) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, formatTime(j.now()), info.Framework, info.Input, info.Root, trigger, StatusRunning)
	if err != nil {
		return "", errors.Wrap(err, "failed to record run start")
	}

	j.log.Debugw("Run started", "run_id", id, "framework", info.Framework)
	return id, nil
}

// RecordComponent appends one component outcome to a run
func (j *Journal) RecordComponent(ctx context.Context, runID string, e Entry) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO run_components (run_id, name, comp_name, tag_name, folder, status, registered, error, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, e.Name, e.CompName, e.TagName, e.Folder, e.Status, e.Registered, e.Error, e.DurationMS)
	if err != nil {
		return errors.Wrapf(err, "failed to record component %s", e.Name)
	}
	return nil
}

// FinishRun stores the final counts and status of a run
func (j *Journal) FinishRun(ctx context.Context, runID string, s Summary) error {
	status := s.Status
	if status == "" {
		status = StatusCompleted
	}

	res, err := j.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, total = ?, succeeded = ?, failed = ? WHERE id = ?`,
		formatTime(j.now()), status, s.Total, s.Succeeded, s.Failed, runID)
	if err != nil {
		return errors.Wrapf(err, "failed to record run %s finish", runID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Newf("run %s not found", runID)
	}

	j.log.Debugw("Run finished", "run_id", runID, "status", status, "succeeded", s.Succeeded, "failed", s.Failed)
	return nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means all.
func (j *Journal) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, framework, input, root, trigger, status, total, succeeded, failed
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		var finished sql.NullString
		if err := rows.Scan(&r.ID, &started, &finished, &r.Framework, &r.Input, &r.Root,
			&r.Trigger, &r.Status, &r.Total, &r.Succeeded, &r.Failed); err != nil {
			return nil, errors.Wrap(err, "failed to scan run")
		}
		if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, errors.Wrapf(err, "run %s has invalid start time", r.ID)
		}
		if finished.Valid {
			t, err := time.Parse(timeLayout, finished.String)
			if err != nil {
				return nil, errors.Wrapf(err, "run %s has invalid finish time", r.ID)
			}
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "failed to iterate runs")
}

// Entries returns the components recorded for a run in processing order
func (j *Journal) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT name, comp_name, tag_name, folder, status, registered, error, duration_ms
		 FROM run_components WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list components of run %s", runID)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.CompName, &e.TagName, &e.Folder, &e.Status, &e.Registered, &e.Error, &e.DurationMS); err != nil {
			return nil, errors.Wrap(err, "failed to scan component")
		}
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "failed to iterate components")
}
