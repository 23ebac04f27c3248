package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/aionboard/internal/db"
	"github.com/alexanderramin/aionboard/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `SELECT user_id, email, persona, answers_json, work_type, frequency,
		time_wasters_json, goal, onboarded_at, updated_at
		FROM profiles WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var (
		p                        domain.UserProfile
		persona                  string
		answersJSON, wastersJSON string
		onboardedAt, updatedAt   string
	)
	err := row.Scan(
		&p.UserID,
		&p.Email,
		&persona,
		&answersJSON,
		&p.WorkType,
		&p.Frequency,
		&wastersJSON,
		&p.Goal,
		&onboardedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}

	p.Persona = domain.Persona(persona)
	if p.Answers, err = decodeAnswers(answersJSON); err != nil {
		return nil, fmt.Errorf("decoding profile answers: %w", err)
	}
	if p.TimeWasters, err = decodeStrings(wastersJSON); err != nil {
		return nil, fmt.Errorf("decoding profile time wasters: %w", err)
	}
	if p.OnboardedAt, err = parseTime(onboardedAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserts or replaces a profile. OnboardedAt is kept from the first
// insert so retaking the survey does not reset it.
func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	answersJSON, err := encodeAnswers(p.Answers)
	if err != nil {
		return fmt.Errorf("encoding profile answers: %w", err)
	}
	wastersJSON, err := encodeStrings(p.TimeWasters)
	if err != nil {
		return fmt.Errorf("encoding profile time wasters: %w", err)
	}

	query := `INSERT INTO profiles (user_id, email, persona, answers_json, work_type, frequency,
		time_wasters_json, goal, onboarded_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			email = excluded.email,
			persona = excluded.persona,
			answers_json = excluded.answers_json,
			work_type = excluded.work_type,
			frequency = excluded.frequency,
			time_wasters_json = excluded.time_wasters_json,
			goal = excluded.goal,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		p.UserID,
		p.Email,
		string(p.Persona),
		answersJSON,
		p.WorkType,
		p.Frequency,
		wastersJSON,
		p.Goal,
		formatTime(p.OnboardedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}
