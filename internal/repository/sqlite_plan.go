package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/aionboard/internal/db"
	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/planner"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, user_id, persona, work_type, frequency, time_wasters_json,
	goal, start_date, generated_at, is_current`

// Create stores a plan as the user's current plan. An empty ID is assigned.
func (r *SQLitePlanRepo) Create(ctx context.Context, rec *domain.PlanRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	wastersJSON, err := encodeStrings(rec.TimeWasters)
	if err != nil {
		return fmt.Errorf("encoding plan time wasters: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE plans SET is_current = 0 WHERE user_id = ? AND is_current = 1`, rec.UserID); err != nil {
		return fmt.Errorf("demoting current plan: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO plans (`+planColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		rec.ID,
		rec.UserID,
		string(rec.Persona),
		rec.WorkType,
		rec.Frequency,
		wastersJSON,
		rec.Goal,
		formatDate(rec.StartDate),
		formatTime(rec.GeneratedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	rec.IsCurrent = true

	scheduled := make(map[string]domain.ScheduledActivity, len(rec.Schedule))
	for _, s := range rec.Schedule {
		scheduled[s.Activity.ID] = s
	}

	insert := `INSERT INTO plan_activities (plan_id, activity_id, phase, position, day,
		scheduled_for, title, difficulty, duration_min, activity_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for n := 1; n <= domain.NumPhases; n++ {
		for pos, a := range rec.Plan.Phase(n).Activities {
			actJSON, err := json.Marshal(a)
			if err != nil {
				return fmt.Errorf("encoding activity %s: %w", a.ID, err)
			}
			var day int
			var scheduledFor any
			if s, ok := scheduled[a.ID]; ok {
				day = s.Day
				scheduledFor = formatDate(s.Date)
			}
			if _, err := r.db.ExecContext(ctx, insert,
				rec.ID, a.ID, n, pos, day, scheduledFor,
				a.Title, string(a.Difficulty), a.DurationMin, string(actJSON),
			); err != nil {
				return fmt.Errorf("inserting plan activity %s: %w", a.ID, err)
			}
		}
	}
	return nil
}

func (r *SQLitePlanRepo) GetCurrent(ctx context.Context, userID string) (*domain.PlanRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM plans WHERE user_id = ? AND is_current = 1`, userID)
	rec, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("current plan for %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadActivities(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.PlanRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	rec, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadActivities(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListByUser returns plan headers, newest first. Activities are not loaded.
func (r *SQLitePlanRepo) ListByUser(ctx context.Context, userID string) ([]*domain.PlanRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM plans WHERE user_id = ? ORDER BY generated_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var out []*domain.PlanRecord
	for rows.Next() {
		rec, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return out, nil
}

func (r *SQLitePlanRepo) loadActivities(ctx context.Context, rec *domain.PlanRecord) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT phase, day, scheduled_for, activity_json
		FROM plan_activities WHERE plan_id = ? ORDER BY phase, position`, rec.ID)
	if err != nil {
		return fmt.Errorf("listing plan activities: %w", err)
	}
	defer rows.Close()

	for n := 1; n <= domain.NumPhases; n++ {
		ph := rec.Plan.Phase(n)
		ph.Title, ph.Subtitle = planner.PhaseTitle(n)
		ph.Activities = []domain.Activity{}
	}
	rec.Schedule = []domain.ScheduledActivity{}

	for rows.Next() {
		var (
			phase, day   int
			scheduledFor sql.NullString
			actJSON      string
		)
		if err := rows.Scan(&phase, &day, &scheduledFor, &actJSON); err != nil {
			return fmt.Errorf("scanning plan activity: %w", err)
		}
		var a domain.Activity
		if err := json.Unmarshal([]byte(actJSON), &a); err != nil {
			return fmt.Errorf("decoding plan activity: %w", err)
		}
		ph := rec.Plan.Phase(phase)
		if ph == nil {
			return fmt.Errorf("plan activity %s has phase %d", a.ID, phase)
		}
		ph.Activities = append(ph.Activities, a)

		if date := parseNullableTime(scheduledFor, dateLayout); date != nil {
			rec.Schedule = append(rec.Schedule, domain.ScheduledActivity{
				Activity: a.Clone(),
				Phase:    phase,
				Day:      day,
				Date:     *date,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating plan activities: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(s scanner) (*domain.PlanRecord, error) {
	var (
		rec                    domain.PlanRecord
		persona, wastersJSON   string
		startDate, generatedAt string
		isCurrent              int
	)
	err := s.Scan(
		&rec.ID,
		&rec.UserID,
		&persona,
		&rec.WorkType,
		&rec.Frequency,
		&wastersJSON,
		&rec.Goal,
		&startDate,
		&generatedAt,
		&isCurrent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	rec.Persona = domain.Persona(persona)
	rec.IsCurrent = intToBool(isCurrent)
	if rec.TimeWasters, err = decodeStrings(wastersJSON); err != nil {
		return nil, fmt.Errorf("decoding plan time wasters: %w", err)
	}
	if rec.StartDate, err = parseDate(startDate); err != nil {
		return nil, err
	}
	if rec.GeneratedAt, err = parseTime(generatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
