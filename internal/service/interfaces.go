package service

import (
	"context"
	"time"

	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/planner"
)

// SurveyState is a snapshot of a respondent's position in the survey.
type SurveyState struct {
	Question    *domain.Question  `json:"question"`
	Answers     *domain.AnswerSet `json:"answers"`
	Pending     []string          `json:"pending"`
	CanContinue bool              `json:"canContinue"`
	Done        bool              `json:"done"`
	// Persona is set once Done.
	Persona domain.Persona `json:"persona,omitempty"`
}

// SurveyService drives a survey one action at a time, persisting a draft
// after every successful action so the survey survives restarts.
type SurveyService interface {
	Begin(ctx context.Context, userID string) (*SurveyState, error)
	Restart(ctx context.Context, userID string) (*SurveyState, error)
	Current(ctx context.Context, userID string) (*SurveyState, error)
	Start(ctx context.Context, userID string) (*SurveyState, error)
	Answer(ctx context.Context, userID, optionID string) (*SurveyState, error)
	Toggle(ctx context.Context, userID, optionID string) (*SurveyState, error)
	Continue(ctx context.Context, userID string) (*SurveyState, error)
	Back(ctx context.Context, userID string) (*SurveyState, error)
}

// OnboardingRequest hands a finished survey to the plan generator.
type OnboardingRequest struct {
	UserID    string
	Email     string
	Answers   *domain.AnswerSet
	StartDate time.Time
}

// OnboardingResult is the persisted outcome of onboarding.
type OnboardingResult struct {
	Profile        *domain.UserProfile
	PersonaProfile domain.PersonaProfile
	Plan           *domain.PlanRecord
}

type OnboardingService interface {
	Complete(ctx context.Context, req OnboardingRequest) (*OnboardingResult, error)
	// CompleteDraft finishes onboarding from the user's saved survey draft.
	CompleteDraft(ctx context.Context, userID, email string, startDate time.Time) (*OnboardingResult, error)
	Profile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type PlanService interface {
	Preview(ctx context.Context, in planner.Input) (domain.Plan, error)
	Current(ctx context.Context, userID string) (*domain.PlanRecord, error)
	History(ctx context.Context, userID string) ([]*domain.PlanRecord, error)
	Regenerate(ctx context.Context, userID string, startDate time.Time) (*domain.PlanRecord, error)
	// Calendar returns the current plan's scheduled activities in [from, to).
	Calendar(ctx context.Context, userID string, from, to time.Time) ([]domain.ScheduledActivity, error)
}

// PhaseProgress summarizes one phase of a plan.
type PhaseProgress struct {
	Phase     int    `json:"phase"`
	Title     string `json:"title"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// Dashboard is a user's progress through their current plan.
type Dashboard struct {
	Profile        *domain.UserProfile       `json:"-"`
	PersonaProfile domain.PersonaProfile     `json:"persona"`
	Plan           *domain.PlanRecord        `json:"-"`
	Total          int                       `json:"total"`
	Completed      int                       `json:"completed"`
	Percent        float64                   `json:"percent"`
	Phases         []PhaseProgress           `json:"phases"`
	CurrentPhase   int                       `json:"currentPhase"`
	DayOfPlan      int                       `json:"dayOfPlan"`
	Streak         int                       `json:"streak"`
	Next           *domain.ScheduledActivity `json:"next,omitempty"`
	CompletedIDs   map[string]bool           `json:"completedIds"`
	// Empty is set when the plan has no activities at all.
	Empty bool `json:"empty"`
}

type ProgressService interface {
	Complete(ctx context.Context, userID, activityID, reflection string) error
	Undo(ctx context.Context, userID, activityID string) error
	Dashboard(ctx context.Context, userID string, now time.Time) (*Dashboard, error)
}
