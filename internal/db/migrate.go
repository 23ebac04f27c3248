package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every step is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is re-run on every start.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateSingleCurrentPlan(db); err != nil {
		return fmt.Errorf("demoting stale current plans: %w", err)
	}
	return nil
}

// migrateSingleCurrentPlan keeps only the newest plan per user current, then
// installs the unique index that enforces it. Databases created before the
// index existed may hold several current plans for one user.
func migrateSingleCurrentPlan(db *sql.DB) error {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `UPDATE plans SET is_current = 0
		WHERE is_current = 1 AND id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY user_id ORDER BY generated_at DESC, id DESC
				) AS rn
				FROM plans WHERE is_current = 1
			) WHERE rn = 1
		)`); err != nil {
		return fmt.Errorf("demoting plans: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `CREATE UNIQUE INDEX IF NOT EXISTS idx_plans_one_current
		ON plans(user_id) WHERE is_current = 1`); err != nil {
		return fmt.Errorf("creating idx_plans_one_current: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing current plan migration: %w", err)
	}
	committed = true
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id           TEXT PRIMARY KEY,
		persona           TEXT NOT NULL
		                  CHECK(persona IN ('cautious-explorer','eager-beginner','practical-adopter',
		                                    'efficiency-seeker','innovation-driver','power-optimizer')),
		answers_json      TEXT NOT NULL DEFAULT '{}',
		work_type         TEXT NOT NULL DEFAULT '',
		frequency         TEXT NOT NULL DEFAULT '',
		time_wasters_json TEXT NOT NULL DEFAULT '[]',
		goal              TEXT NOT NULL DEFAULT '',
		onboarded_at      TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS survey_drafts (
		user_id             TEXT PRIMARY KEY,
		current_question_id TEXT NOT NULL,
		answers_json        TEXT NOT NULL DEFAULT '{}',
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL,
		persona           TEXT NOT NULL,
		work_type         TEXT NOT NULL DEFAULT '',
		frequency         TEXT NOT NULL DEFAULT '',
		time_wasters_json TEXT NOT NULL DEFAULT '[]',
		goal              TEXT NOT NULL DEFAULT '',
		start_date        TEXT NOT NULL,
		generated_at      TEXT NOT NULL,
		is_current        INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_user ON plans(user_id, generated_at)`,

	`CREATE TABLE IF NOT EXISTS plan_activities (
		plan_id       TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		activity_id   TEXT NOT NULL,
		phase         INTEGER NOT NULL CHECK(phase BETWEEN 1 AND 3),
		position      INTEGER NOT NULL,
		day           INTEGER NOT NULL DEFAULT 0,
		scheduled_for TEXT,
		title         TEXT NOT NULL,
		difficulty    TEXT NOT NULL,
		duration_min  INTEGER NOT NULL DEFAULT 0,
		activity_json TEXT NOT NULL,
		PRIMARY KEY (plan_id, activity_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_activities_order ON plan_activities(plan_id, phase, position)`,

	`CREATE TABLE IF NOT EXISTS activity_progress (
		user_id      TEXT NOT NULL,
		plan_id      TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		activity_id  TEXT NOT NULL,
		completed_at TEXT NOT NULL,
		PRIMARY KEY (user_id, plan_id, activity_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_progress_completed ON activity_progress(user_id, completed_at)`,

	// Reflection notes were added after the first release.
	`ALTER TABLE activity_progress ADD COLUMN reflection TEXT NOT NULL DEFAULT ''`,

	`ALTER TABLE profiles ADD COLUMN email TEXT NOT NULL DEFAULT ''`,

	`ALTER TABLE survey_drafts ADD COLUMN pending_json TEXT NOT NULL DEFAULT '[]'`,
}
