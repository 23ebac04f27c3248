package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/aionboard/internal/db"
	"github.com/alexanderramin/aionboard/internal/domain"
)

// SQLiteDraftRepo implements DraftRepo using a SQLite database.
type SQLiteDraftRepo struct {
	db db.DBTX
}

// NewSQLiteDraftRepo creates a new SQLiteDraftRepo.
func NewSQLiteDraftRepo(conn db.DBTX) *SQLiteDraftRepo {
	return &SQLiteDraftRepo{db: conn}
}

func (r *SQLiteDraftRepo) Get(ctx context.Context, userID string) (*domain.SurveyDraft, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, current_question_id, answers_json, pending_json, updated_at
		FROM survey_drafts WHERE user_id = ?`, userID)

	var d domain.SurveyDraft
	var answersJSON, pendingJSON, updatedAt string
	if err := row.Scan(&d.UserID, &d.CurrentQuestionID, &answersJSON, &pendingJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("survey draft %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning survey draft: %w", err)
	}

	var err error
	if d.Answers, err = decodeAnswers(answersJSON); err != nil {
		return nil, fmt.Errorf("decoding draft answers: %w", err)
	}
	if d.Pending, err = decodeStrings(pendingJSON); err != nil {
		return nil, fmt.Errorf("decoding draft selection: %w", err)
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *SQLiteDraftRepo) Save(ctx context.Context, d *domain.SurveyDraft) error {
	answersJSON, err := encodeAnswers(d.Answers)
	if err != nil {
		return fmt.Errorf("encoding draft answers: %w", err)
	}
	pendingJSON, err := encodeStrings(d.Pending)
	if err != nil {
		return fmt.Errorf("encoding draft selection: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO survey_drafts (user_id, current_question_id, answers_json, pending_json, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		d.UserID, d.CurrentQuestionID, answersJSON, pendingJSON, formatTime(d.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving survey draft: %w", err)
	}
	return nil
}

// Delete removes a user's draft. Deleting a missing draft is not an error.
func (r *SQLiteDraftRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM survey_drafts WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting survey draft: %w", err)
	}
	return nil
}
