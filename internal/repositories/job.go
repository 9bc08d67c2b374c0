package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glowstack/reel/internal/models"
	"github.com/glowstack/reel/internal/shared"
)

// JobRepository implements models.Repository[*models.GenerationJob] for
// generation job history.
//
// Handles job CRUD operations with soft delete support.
type JobRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.GenerationJob] = (*JobRepository)(nil)

// NewJobRepository creates a JobRepository and ensures its schema exists.
func NewJobRepository(db *sql.DB) (*JobRepository, error) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			sequence INTEGER NOT NULL,
			filter_id TEXT,
			model TEXT NOT NULL,
			prompt TEXT,
			video_path TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			deleted_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS jobs_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			value INTEGER NOT NULL
		)`,
		`INSERT OR IGNORE INTO jobs_sequence (id, value) VALUES (1, 0)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("failed to create jobs schema: %w", err)
		}
	}

	return &JobRepository{db: db}, nil
}

// Create inserts a new job into the database with generated ID and sequence
func (r *JobRepository) Create(job *models.GenerationJob) error {
	sequence, err := NextSequence(r.db, "jobs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	job.SetID(shared.GenerateID())
	job.SetSequence(sequence)

	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO jobs (id, sequence, filter_id, model, prompt, video_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		job.ID(),
		job.Sequence(),
		job.FilterID(),
		job.Model(),
		job.Prompt(),
		job.VideoPath(),
		job.CreatedAt(),
		job.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	return nil
}

// Get retrieves a job by ID, excluding soft-deleted jobs
func (r *JobRepository) Get(id string) (*models.GenerationJob, error) {
	query := `
		SELECT id, sequence, filter_id, model, prompt, video_path, created_at, updated_at
		FROM jobs
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing job in the database
func (r *JobRepository) Update(job *models.GenerationJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	job.SetUpdatedAt(now)

	query := `
		UPDATE jobs
		SET filter_id = ?, model = ?, prompt = ?, video_path = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		job.FilterID(),
		job.Model(),
		job.Prompt(),
		job.VideoPath(),
		now,
		job.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job not found or already deleted: %s", job.ID())
	}

	return nil
}

// Delete soft-deletes a job by setting its deleted_at timestamp
func (r *JobRepository) Delete(id string) error {
	query := `UPDATE jobs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves jobs matching the given criteria, newest first.
//
// Supported criteria keys: filter_id, model.
func (r *JobRepository) List(criteria map[string]any) ([]*models.GenerationJob, error) {
	query := `
		SELECT id, sequence, filter_id, model, prompt, video_path, created_at, updated_at
		FROM jobs
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if filterID, ok := criteria["filter_id"]; ok {
		query += " AND filter_id = ?"
		args = append(args, filterID)
	}
	if model, ok := criteria["model"]; ok {
		query += " AND model = ?"
		args = append(args, model)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.GenerationJob{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *JobRepository) scanOne(row *sql.Row) (*models.GenerationJob, error) {
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job not found")
	}
	return job, err
}

func scanJob(row rowScanner) (*models.GenerationJob, error) {
	var (
		id, model, videoPath string
		filterID, prompt     sql.NullString
		sequence             int
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &sequence, &filterID, &model, &prompt, &videoPath, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	job := models.NewGenerationJob(filterID.String, model, prompt.String, videoPath)
	job.SetID(id)
	job.SetSequence(sequence)
	job.SetTimestamps(createdAt)
	job.SetUpdatedAt(updatedAt)

	return job, nil
}
