package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// JobRepositoryPG persists queued generation jobs.
type JobRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new job repository backed by PostgreSQL.
func NewJobRepository(pool *pgxpool.Pool) *JobRepositoryPG {
	return &JobRepositoryPG{pool: pool}
}

const jobColumns = `id, user_id, type, status, prompt_json, result_json, aspect_ratio,
COALESCE(error_message, ''), COALESCE(error_kind, ''), created_at, updated_at`

// Create inserts a new queued job.
func (r *JobRepositoryPG) Create(ctx context.Context, job *domain.Job) error {
	query := `
INSERT INTO jobs (id, user_id, type, status, prompt_json, aspect_ratio)
VALUES ($1, $2, $3, $4, $5, $6);
`
	_, err := r.pool.Exec(ctx, query,
		job.ID,
		job.UserID,
		job.Type,
		job.Status,
		job.PromptJSON,
		job.AspectRatio,
	)
	return err
}

// ClaimNext atomically moves the oldest queued job to running and returns it.
// SKIP LOCKED lets multiple workers poll the same queue without contention.
func (r *JobRepositoryPG) ClaimNext(ctx context.Context, jobType domain.JobType) (*domain.Job, error) {
	query := `
UPDATE jobs
SET status = $2, updated_at = NOW()
WHERE id = (
    SELECT id
    FROM jobs
    WHERE type = $1 AND status = $3
    ORDER BY created_at ASC
    FOR UPDATE SKIP LOCKED
    LIMIT 1
)
RETURNING ` + jobColumns + `;
`
	row := r.pool.QueryRow(ctx, query, jobType, domain.JobStatusRunning, domain.JobStatusQueued)
	return scanJob(row)
}

// MarkSucceeded finalizes a job with its result payload.
func (r *JobRepositoryPG) MarkSucceeded(ctx context.Context, jobID string, resultJSON []byte) error {
	_, err := r.pool.Exec(ctx, `
UPDATE jobs
SET status = $2, result_json = $3, updated_at = NOW()
WHERE id = $1;
`, jobID, domain.JobStatusSucceeded, resultJSON)
	return err
}

// MarkFailed finalizes a job with the failure category and diagnostic.
func (r *JobRepositoryPG) MarkFailed(ctx context.Context, jobID, kind, message string) error {
	_, err := r.pool.Exec(ctx, `
UPDATE jobs
SET status = $2, error_kind = $3, error_message = $4, updated_at = NOW()
WHERE id = $1;
`, jobID, domain.JobStatusFailed, kind, message)
	return err
}

// GetByID fetches a job owned by the user.
func (r *JobRepositoryPG) GetByID(ctx context.Context, userID, jobID string) (*domain.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND user_id = $2`, jobID, userID)
	return scanJob(row)
}

// ListByUser returns the user's jobs, newest first.
func (r *JobRepositoryPG) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;
`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	if err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.Type,
		&job.Status,
		&job.PromptJSON,
		&job.ResultJSON,
		&job.AspectRatio,
		&job.ErrorMessage,
		&job.ErrorKind,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}
