// Package history keeps a local record of rendered jobs.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("job not found")

// Job is one run of the composition engine.
type Job struct {
	ID          string
	JobID       string // backend job id, empty for local inputs
	Input       string
	Pages       int
	TotalFrames int
	FPS         int
	Output      string
	CreatedAt   time.Time
}

// Duration is the length of the rendered video.
func (j Job) Duration() time.Duration {
	if j.FPS <= 0 {
		return 0
	}
	return time.Duration(float64(j.TotalFrames) / float64(j.FPS) * float64(time.Second))
}

// Store provides database operations for the job history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			job_id TEXT NOT NULL DEFAULT '',
			input TEXT NOT NULL,
			pages INTEGER NOT NULL,
			total_frames INTEGER NOT NULL,
			fps INTEGER NOT NULL,
			output TEXT NOT NULL DEFAULT '',
			created_at REAL NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_jobs_created ON jobs(created_at);
	`)
	return err
}

// Record stores j, assigning an ID and CreatedAt when they are empty.
func (s *Store) Record(ctx context.Context, j *Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, job_id, input, pages, total_frames, fps, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, j.ID, j.JobID, j.Input, j.Pages, j.TotalFrames, j.FPS, j.Output, unixFromTime(j.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// Get returns the job with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, job_id, input, pages, total_frames, fps, output, created_at
		FROM jobs
		WHERE id = ?
	`, id)

	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("scan job: %w", err)
	}
	return j, nil
}

// List returns the most recent jobs first. A non-positive limit returns all jobs.
func (s *Store) List(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_id, input, pages, total_frames, fps, output, created_at
		FROM jobs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// Delete removes a job by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row scanner) (*Job, error) {
	var j Job
	var createdAt float64
	if err := row.Scan(&j.ID, &j.JobID, &j.Input, &j.Pages, &j.TotalFrames, &j.FPS, &j.Output, &createdAt); err != nil {
		return nil, err
	}
	j.CreatedAt = timeFromUnix(createdAt)
	return &j, nil
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*1e9))
}
