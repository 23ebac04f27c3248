package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/aionboard/internal/catalog"
	"github.com/alexanderramin/aionboard/internal/db"
	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/planner"
	"github.com/alexanderramin/aionboard/internal/repository"
	"github.com/alexanderramin/aionboard/internal/survey"
)

type onboardingService struct {
	catalog  *catalog.Catalog
	gen      planner.PlanGenerator
	profiles repository.ProfileRepo
	drafts   repository.DraftRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

// NewOnboardingService wires onboarding. Pass a db.RetryingUnitOfWork to
// retry transient persistence failures.
func NewOnboardingService(
	cat *catalog.Catalog,
	gen planner.PlanGenerator,
	profiles repository.ProfileRepo,
	drafts repository.DraftRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) OnboardingService {
	return &onboardingService{
		catalog:  cat,
		gen:      gen,
		profiles: profiles,
		drafts:   drafts,
		uow:      uow,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *onboardingService) Complete(ctx context.Context, req OnboardingRequest) (result *OnboardingResult, err error) {
	fields := map[string]any{"user_id": req.UserID}
	defer observe(ctx, s.observer, "complete-onboarding", s.now(), fields, &err)

	if req.UserID == "" {
		return nil, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	if err := ValidateAnswers(s.catalog, req.Answers); err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Second)
	start := req.StartDate
	if start.IsZero() {
		start = now
	}
	start = planner.StartOfDay(start)

	persona := survey.CalculatePersona(req.Answers)
	fields["persona"] = string(persona)
	in := planner.InputFromAnswers(persona, req.Answers)
	plan := s.gen.Generate(in)

	profile := &domain.UserProfile{
		UserID:      req.UserID,
		Email:       req.Email,
		Persona:     persona,
		Answers:     req.Answers.Clone(),
		WorkType:    in.WorkType,
		Frequency:   in.Frequency,
		TimeWasters: in.TimeWasters,
		Goal:        in.Goal,
		OnboardedAt: now,
		UpdatedAt:   now,
	}
	rec := newPlanRecord(req.UserID, in, plan, start, now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProfileRepo(tx).Upsert(ctx, profile); err != nil {
			return err
		}
		if err := repository.NewSQLitePlanRepo(tx).Create(ctx, rec); err != nil {
			return err
		}
		return repository.NewSQLiteDraftRepo(tx).Delete(ctx, req.UserID)
	})
	if err != nil {
		return nil, fmt.Errorf("saving onboarding: %w", err)
	}
	fields["plan_id"] = rec.ID
	fields["activities"] = rec.Plan.TotalActivities()

	return &OnboardingResult{
		Profile:        profile,
		PersonaProfile: domain.ProfileFor(persona),
		Plan:           rec,
	}, nil
}

func (s *onboardingService) CompleteDraft(ctx context.Context, userID, email string, startDate time.Time) (*OnboardingResult, error) {
	draft, err := s.drafts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", userID, ErrNoSurvey)
		}
		return nil, fmt.Errorf("loading survey draft: %w", err)
	}
	sess, err := survey.Restore(s.catalog, draft.CurrentQuestionID, draft.Answers)
	if err != nil {
		return nil, fmt.Errorf("restoring survey draft: %w", err)
	}
	res, err := sess.Complete()
	if err != nil {
		return nil, err
	}
	return s.Complete(ctx, OnboardingRequest{
		UserID:    userID,
		Email:     email,
		Answers:   res.Answers,
		StartDate: startDate,
	})
}

func (s *onboardingService) Profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", userID, ErrNotOnboarded)
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return p, nil
}

func newPlanRecord(userID string, in planner.Input, plan domain.Plan, start, now time.Time) *domain.PlanRecord {
	return &domain.PlanRecord{
		UserID:      userID,
		Persona:     in.Persona,
		WorkType:    in.WorkType,
		Frequency:   in.Frequency,
		TimeWasters: in.TimeWasters,
		Goal:        in.Goal,
		StartDate:   start,
		GeneratedAt: now,
		IsCurrent:   true,
		Plan:        plan,
		Schedule:    planner.Schedule(plan, start),
	}
}

// ValidateAnswers checks every answer against the question catalog: the
// question must exist, take answers, match the answer's shape, and offer each
// selected option.
func ValidateAnswers(cat *catalog.Catalog, answers *domain.AnswerSet) error {
	if answers == nil || answers.Len() == 0 {
		return fmt.Errorf("answers are required: %w", ErrInvalidInput)
	}
	var errs []error
	for _, qid := range answers.Keys() {
		q, ok := cat.Question(qid)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown question %q", qid))
			continue
		}
		a, _ := answers.Get(qid)
		switch q.Type {
		case domain.QuestionSingleChoice:
			if a.IsMulti() {
				errs = append(errs, fmt.Errorf("question %q takes a single option", qid))
				continue
			}
		case domain.QuestionMultiChoice:
			if !a.IsMulti() {
				errs = append(errs, fmt.Errorf("question %q takes a list of options", qid))
				continue
			}
			if len(a.Multi) == 0 {
				errs = append(errs, fmt.Errorf("question %q: %w", qid, survey.ErrEmptySelection))
				continue
			}
		default:
			errs = append(errs, fmt.Errorf("question %q does not take answers", qid))
			continue
		}
		for _, id := range a.Values() {
			if !q.HasOption(id) {
				errs = append(errs, fmt.Errorf("%q on %q: %w", id, qid, survey.ErrUnknownOption))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}
