package repo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// PlanRepositoryPG persists saved training plans. The plan document itself is
// stored as JSONB because its shape is owned by the generation contract, not
// the schema.
type PlanRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPlanRepository creates a new PlanRepositoryPG.
func NewPlanRepository(pool *pgxpool.Pool) *PlanRepositoryPG {
	return &PlanRepositoryPG{pool: pool}
}

// Save persists a new plan and makes it the active one for the user.
func (r *PlanRepositoryPG) Save(ctx context.Context, saved *domain.SavedPlan) error {
	doc, err := json.Marshal(saved.Plan)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE plans SET active = FALSE WHERE user_id = $1 AND active`, saved.UserID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
INSERT INTO plans (id, user_id, sport, plan_json, active)
VALUES ($1, $2, $3, $4, TRUE);
`, saved.ID, saved.UserID, saved.Sport, doc); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID fetches a plan owned by the user.
func (r *PlanRepositoryPG) GetByID(ctx context.Context, userID, planID string) (*domain.SavedPlan, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, sport, plan_json, active, created_at
FROM plans
WHERE id = $1 AND user_id = $2;
`, planID, userID)
	return scanPlan(row)
}

// ListByUser returns the user's plans, newest first.
func (r *PlanRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.SavedPlan, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, sport, plan_json, active, created_at
FROM plans
WHERE user_id = $1
ORDER BY created_at DESC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []domain.SavedPlan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// SetActive marks one plan active and clears the flag on the others.
func (r *PlanRepositoryPG) SetActive(ctx context.Context, userID, planID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE plans SET active = FALSE WHERE user_id = $1 AND active`, userID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `UPDATE plans SET active = TRUE WHERE id = $1 AND user_id = $2`, planID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit(ctx)
}

// ReplacePlan overwrites the stored plan document, used after a day or an
// exercise inside the plan is regenerated.
func (r *PlanRepositoryPG) ReplacePlan(ctx context.Context, userID, planID string, plan domain.TrainingPlan) error {
	doc, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE plans
SET plan_json = $3
WHERE id = $1 AND user_id = $2;
`, planID, userID, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a plan owned by the user.
func (r *PlanRepositoryPG) Delete(ctx context.Context, userID, planID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1 AND user_id = $2`, planID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPlan(row pgx.Row) (*domain.SavedPlan, error) {
	var (
		saved domain.SavedPlan
		doc   []byte
	)
	if err := row.Scan(&saved.ID, &saved.UserID, &saved.Sport, &doc, &saved.Active, &saved.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(doc, &saved.Plan); err != nil {
		return nil, err
	}
	return &saved, nil
}
