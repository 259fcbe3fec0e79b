package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// ProfileRepositoryPG persists user profiles in PostgreSQL.
type ProfileRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepositoryPG.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepositoryPG {
	return &ProfileRepositoryPG{pool: pool}
}

const profileColumns = `id, name, gender, age, weight, height, target_weight, body_fat, body_type,
activity_level, sleep_quality, diet_preference, level, injuries, equipment,
days_per_week, session_duration, focus_area, points, completed_workouts, gems, updated_at`

// Upsert inserts or replaces the profile for its user.
func (r *ProfileRepositoryPG) Upsert(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error) {
	query := `
INSERT INTO profiles (id, name, gender, age, weight, height, target_weight, body_fat, body_type,
                      activity_level, sleep_quality, diet_preference, level, injuries, equipment,
                      days_per_week, session_duration, focus_area, points, completed_workouts, gems)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    gender = EXCLUDED.gender,
    age = EXCLUDED.age,
    weight = EXCLUDED.weight,
    height = EXCLUDED.height,
    target_weight = EXCLUDED.target_weight,
    body_fat = EXCLUDED.body_fat,
    body_type = EXCLUDED.body_type,
    activity_level = EXCLUDED.activity_level,
    sleep_quality = EXCLUDED.sleep_quality,
    diet_preference = EXCLUDED.diet_preference,
    level = EXCLUDED.level,
    injuries = EXCLUDED.injuries,
    equipment = EXCLUDED.equipment,
    days_per_week = EXCLUDED.days_per_week,
    session_duration = EXCLUDED.session_duration,
    focus_area = EXCLUDED.focus_area,
    updated_at = NOW()
RETURNING ` + profileColumns + `;
`

	row := r.pool.QueryRow(ctx, query,
		p.ID, p.Name, p.Gender, p.Age, p.Weight, p.Height, p.TargetWeight, p.BodyFat, p.BodyType,
		p.ActivityLevel, p.SleepQuality, p.DietPreference, p.Level, p.Injuries, p.Equipment,
		p.DaysPerWeek, p.SessionDuration, p.FocusArea, p.Points, p.CompletedWorkouts, p.Gems,
	)
	return scanProfile(row)
}

// GetByID fetches a profile by user UUID.
func (r *ProfileRepositoryPG) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

// AddProgress credits gamification counters after a completed workout.
func (r *ProfileRepositoryPG) AddProgress(ctx context.Context, id string, points, workouts, gems int) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE profiles
SET points = points + $2,
    completed_workouts = completed_workouts + $3,
    gems = gems + $4,
    updated_at = NOW()
WHERE id = $1;
`, id, points, workouts, gems)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	if err := row.Scan(
		&p.ID, &p.Name, &p.Gender, &p.Age, &p.Weight, &p.Height, &p.TargetWeight, &p.BodyFat, &p.BodyType,
		&p.ActivityLevel, &p.SleepQuality, &p.DietPreference, &p.Level, &p.Injuries, &p.Equipment,
		&p.DaysPerWeek, &p.SessionDuration, &p.FocusArea, &p.Points, &p.CompletedWorkouts, &p.Gems, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
