package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// WorkoutLogRepositoryPG persists completed workout sessions.
type WorkoutLogRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewWorkoutLogRepository creates a new WorkoutLogRepositoryPG.
func NewWorkoutLogRepository(pool *pgxpool.Pool) *WorkoutLogRepositoryPG {
	return &WorkoutLogRepositoryPG{pool: pool}
}

// Insert records a completed session.
func (r *WorkoutLogRepositoryPG) Insert(ctx context.Context, log *domain.WorkoutLog) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO workout_logs (id, user_id, exercise_id, logged_on, duration_minutes)
VALUES ($1, $2, $3, $4, $5);
`, log.ID, log.UserID, log.ExerciseID, log.Date, log.Duration)
	return err
}

// ListByUser returns the user's history, newest first.
func (r *WorkoutLogRepositoryPG) ListByUser(ctx context.Context, userID string, limit int) ([]domain.WorkoutLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, exercise_id, logged_on, duration_minutes, created_at
FROM workout_logs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;
`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []domain.WorkoutLog{}
	for rows.Next() {
		var log domain.WorkoutLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.ExerciseID, &log.Date, &log.Duration, &log.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// CountByUser returns the total number of logged sessions.
func (r *WorkoutLogRepositoryPG) CountByUser(ctx context.Context, userID string) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM workout_logs WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
