package repository

import (
	"context"

	"github.com/alexanderramin/aionboard/internal/domain"
)

type ProfileRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}

type DraftRepo interface {
	Get(ctx context.Context, userID string) (*domain.SurveyDraft, error)
	Save(ctx context.Context, d *domain.SurveyDraft) error
	Delete(ctx context.Context, userID string) error
}

// PlanRepo stores generated plans. Create demotes the user's previous
// current plan; run it inside a UnitOfWork to keep that atomic.
type PlanRepo interface {
	Create(ctx context.Context, r *domain.PlanRecord) error
	GetCurrent(ctx context.Context, userID string) (*domain.PlanRecord, error)
	GetByID(ctx context.Context, id string) (*domain.PlanRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.PlanRecord, error)
}

type ProgressRepo interface {
	MarkComplete(ctx context.Context, p *domain.ActivityProgress) error
	Unmark(ctx context.Context, userID, planID, activityID string) error
	ListByPlan(ctx context.Context, userID, planID string) ([]domain.ActivityProgress, error)
}
