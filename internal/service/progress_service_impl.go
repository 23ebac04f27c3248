package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/planner"
	"github.com/alexanderramin/aionboard/internal/repository"
)

type progressService struct {
	profiles repository.ProfileRepo
	plans    repository.PlanRepo
	progress repository.ProgressRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewProgressService(
	profiles repository.ProfileRepo,
	plans repository.PlanRepo,
	progress repository.ProgressRepo,
	observers ...UseCaseObserver,
) ProgressService {
	return &progressService{
		profiles: profiles,
		plans:    plans,
		progress: progress,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *progressService) Complete(ctx context.Context, userID, activityID, reflection string) (err error) {
	defer observe(ctx, s.observer, "complete-activity", s.now(),
		map[string]any{"user_id": userID, "activity_id": activityID}, &err)

	rec, err := s.currentPlan(ctx, userID)
	if err != nil {
		return err
	}
	if !planContains(rec, activityID) {
		return fmt.Errorf("%s: %w", activityID, ErrActivityNotInPlan)
	}
	return s.progress.MarkComplete(ctx, &domain.ActivityProgress{
		UserID:      userID,
		PlanID:      rec.ID,
		ActivityID:  activityID,
		CompletedAt: s.now().UTC().Truncate(time.Second),
		Reflection:  reflection,
	})
}

func (s *progressService) Undo(ctx context.Context, userID, activityID string) (err error) {
	defer observe(ctx, s.observer, "undo-activity", s.now(),
		map[string]any{"user_id": userID, "activity_id": activityID}, &err)

	rec, err := s.currentPlan(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.progress.Unmark(ctx, userID, rec.ID, activityID); err != nil {
		return fmt.Errorf("undoing %s: %w", activityID, err)
	}
	return nil
}

// Dashboard summarizes progress through the current plan as of now.
func (s *progressService) Dashboard(ctx context.Context, userID string, now time.Time) (*Dashboard, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", userID, ErrNotOnboarded)
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	rec, err := s.currentPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	done, err := s.progress.ListByPlan(ctx, userID, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("listing progress: %w", err)
	}
	return buildDashboard(profile, rec, done, now), nil
}

func (s *progressService) currentPlan(ctx context.Context, userID string) (*domain.PlanRecord, error) {
	rec, err := s.plans.GetCurrent(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", userID, ErrNoPlan)
		}
		return nil, fmt.Errorf("loading current plan: %w", err)
	}
	return rec, nil
}

func planContains(rec *domain.PlanRecord, activityID string) bool {
	for _, ph := range rec.Plan.Phases() {
		for _, a := range ph.Activities {
			if a.ID == activityID {
				return true
			}
		}
	}
	return false
}

func buildDashboard(profile *domain.UserProfile, rec *domain.PlanRecord, done []domain.ActivityProgress, now time.Time) *Dashboard {
	completed := make(map[string]bool, len(done))
	for _, p := range done {
		completed[p.ActivityID] = true
	}

	d := &Dashboard{
		Profile:        profile,
		PersonaProfile: domain.ProfileFor(profile.Persona),
		Plan:           rec,
		CompletedIDs:   map[string]bool{},
	}
	for n, ph := range rec.Plan.Phases() {
		pp := PhaseProgress{Phase: n + 1, Title: ph.Title, Total: len(ph.Activities)}
		for _, a := range ph.Activities {
			if completed[a.ID] {
				pp.Completed++
				d.CompletedIDs[a.ID] = true
			}
		}
		d.Total += pp.Total
		d.Completed += pp.Completed
		d.Phases = append(d.Phases, pp)
	}
	d.Empty = d.Total == 0
	if d.Total > 0 {
		d.Percent = float64(d.Completed) * 100 / float64(d.Total)
	}

	d.DayOfPlan = planner.DayOfPlan(rec.StartDate, now)
	d.CurrentPhase = planner.PhaseForDay(d.DayOfPlan)
	d.Streak = streak(done, now)

	for i := range rec.Schedule {
		if !completed[rec.Schedule[i].Activity.ID] {
			next := rec.Schedule[i]
			d.Next = &next
			break
		}
	}
	return d
}

// streak counts consecutive calendar days with at least one completion,
// ending today or yesterday in now's location.
func streak(done []domain.ActivityProgress, now time.Time) int {
	days := make(map[string]bool, len(done))
	for _, p := range done {
		days[p.CompletedAt.In(now.Location()).Format(time.DateOnly)] = true
	}
	day := planner.StartOfDay(now)
	if !days[day.Format(time.DateOnly)] {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for days[day.Format(time.DateOnly)] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}
