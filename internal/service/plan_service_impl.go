package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/aionboard/internal/db"
	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/planner"
	"github.com/alexanderramin/aionboard/internal/repository"
)

type planService struct {
	gen      planner.PlanGenerator
	profiles repository.ProfileRepo
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewPlanService(
	gen planner.PlanGenerator,
	profiles repository.ProfileRepo,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		gen:      gen,
		profiles: profiles,
		plans:    plans,
		uow:      uow,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Preview generates a plan without persisting anything.
func (s *planService) Preview(ctx context.Context, in planner.Input) (plan domain.Plan, err error) {
	defer observe(ctx, s.observer, "preview-plan", s.now(), map[string]any{"persona": string(in.Persona)}, &err)

	if !in.Persona.Valid() {
		return domain.Plan{}, fmt.Errorf("unknown persona %q: %w", in.Persona, ErrInvalidInput)
	}
	return s.gen.Generate(in), nil
}

func (s *planService) Current(ctx context.Context, userID string) (*domain.PlanRecord, error) {
	rec, err := s.plans.GetCurrent(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", userID, ErrNoPlan)
		}
		return nil, fmt.Errorf("loading current plan: %w", err)
	}
	return rec, nil
}

func (s *planService) History(ctx context.Context, userID string) ([]*domain.PlanRecord, error) {
	recs, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	return recs, nil
}

// Regenerate builds a fresh current plan from the user's stored profile.
// Progress against the previous plan stays attached to that plan.
func (s *planService) Regenerate(ctx context.Context, userID string, startDate time.Time) (rec *domain.PlanRecord, err error) {
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.observer, "regenerate-plan", s.now(), fields, &err)

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", userID, ErrNotOnboarded)
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	fields["persona"] = string(profile.Persona)

	in := planner.Input{
		Persona:     profile.Persona,
		WorkType:    profile.WorkType,
		Frequency:   profile.Frequency,
		TimeWasters: profile.TimeWasters,
		Goal:        profile.Goal,
	}
	now := s.now().UTC().Truncate(time.Second)
	if startDate.IsZero() {
		startDate = now
	}
	rec = newPlanRecord(userID, in, s.gen.Generate(in), planner.StartOfDay(startDate), now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePlanRepo(tx).Create(ctx, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}
	fields["plan_id"] = rec.ID
	return rec, nil
}

func (s *planService) Calendar(ctx context.Context, userID string, from, to time.Time) ([]domain.ScheduledActivity, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("calendar range %s..%s is empty: %w",
			from.Format(time.DateOnly), to.Format(time.DateOnly), ErrInvalidInput)
	}
	rec, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []domain.ScheduledActivity{}
	for _, sa := range rec.Schedule {
		if !sa.Date.Before(from) && sa.Date.Before(to) {
			out = append(out, sa)
		}
	}
	return out, nil
}
