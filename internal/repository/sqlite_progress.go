package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/aionboard/internal/db"
	"github.com/alexanderramin/aionboard/internal/domain"
)

// SQLiteProgressRepo implements ProgressRepo using a SQLite database.
type SQLiteProgressRepo struct {
	db db.DBTX
}

// NewSQLiteProgressRepo creates a new SQLiteProgressRepo.
func NewSQLiteProgressRepo(conn db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: conn}
}

// MarkComplete records a completion. Marking an already completed activity
// keeps the original completion time and replaces the reflection.
func (r *SQLiteProgressRepo) MarkComplete(ctx context.Context, p *domain.ActivityProgress) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_progress (user_id, plan_id, activity_id, completed_at, reflection)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, plan_id, activity_id) DO UPDATE SET reflection = excluded.reflection`,
		p.UserID, p.PlanID, p.ActivityID, formatTime(p.CompletedAt), p.Reflection)
	if err != nil {
		return fmt.Errorf("marking activity complete: %w", err)
	}
	return nil
}

func (r *SQLiteProgressRepo) Unmark(ctx context.Context, userID, planID, activityID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM activity_progress WHERE user_id = ? AND plan_id = ? AND activity_id = ?`,
		userID, planID, activityID)
	if err != nil {
		return fmt.Errorf("unmarking activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unmarking activity: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("progress for %s: %w", activityID, ErrNotFound)
	}
	return nil
}

// ListByPlan returns completions in the order they happened.
func (r *SQLiteProgressRepo) ListByPlan(ctx context.Context, userID, planID string) ([]domain.ActivityProgress, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, plan_id, activity_id, completed_at, reflection
		FROM activity_progress WHERE user_id = ? AND plan_id = ?
		ORDER BY completed_at, activity_id`, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("listing progress: %w", err)
	}
	defer rows.Close()

	out := []domain.ActivityProgress{}
	for rows.Next() {
		var p domain.ActivityProgress
		var completedAt string
		if err := rows.Scan(&p.UserID, &p.PlanID, &p.ActivityID, &completedAt, &p.Reflection); err != nil {
			return nil, fmt.Errorf("scanning progress: %w", err)
		}
		if p.CompletedAt, err = parseTime(completedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress: %w", err)
	}
	return out, nil
}
