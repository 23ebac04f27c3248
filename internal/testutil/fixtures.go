package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/aionboard/internal/catalog"
	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/planner"
)

// Answer options
type AnswersOption func(*domain.AnswerSet)

func WithAnswer(questionID, optionID string) AnswersOption {
	return func(a *domain.AnswerSet) {
		a.Set(questionID, domain.SingleAnswer(optionID))
	}
}

func WithMultiAnswer(questionID string, optionIDs ...string) AnswersOption {
	return func(a *domain.AnswerSet) {
		a.Set(questionID, domain.MultiAnswer(optionIDs))
	}
}

// NewTestAnswers returns a complete answer set for a technical power user who
// wants to save time, in survey order. Options override individual answers.
func NewTestAnswers(opts ...AnswersOption) *domain.AnswerSet {
	a := domain.NewAnswerSet()
	a.Set(domain.QuestionIDWorkType, domain.SingleAnswer("technical"))
	a.Set(domain.QuestionIDExperience, domain.SingleAnswer("power-user"))
	a.Set(domain.QuestionIDCurrentTools, domain.MultiAnswer([]string{"code-assistant"}))
	a.Set(domain.QuestionIDTimeWasters, domain.MultiAnswer([]string{"email", "research"}))
	a.Set(domain.QuestionIDEngagementFrequency, domain.SingleAnswer("daily"))
	a.Set(domain.QuestionIDSuccessMetric, domain.SingleAnswer("save-time"))
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Profile options
type ProfileOption func(*domain.UserProfile)

func WithPersona(p domain.Persona) ProfileOption {
	return func(up *domain.UserProfile) {
		up.Persona = p
	}
}

func WithEmail(email string) ProfileOption {
	return func(up *domain.UserProfile) {
		up.Email = email
	}
}

func NewTestProfile(userID string, opts ...ProfileOption) *domain.UserProfile {
	now := time.Now().UTC().Truncate(time.Second)
	answers := NewTestAnswers()
	p := &domain.UserProfile{
		UserID:      userID,
		Persona:     domain.PersonaPowerOptimizer,
		Answers:     answers,
		WorkType:    answers.Single(domain.QuestionIDWorkType),
		Frequency:   answers.Single(domain.QuestionIDEngagementFrequency),
		TimeWasters: answers.Multi(domain.QuestionIDTimeWasters),
		Goal:        answers.Single(domain.QuestionIDSuccessMetric),
		OnboardedAt: now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan options
type PlanOption func(*domain.PlanRecord)

func WithStartDate(d time.Time) PlanOption {
	return func(r *domain.PlanRecord) {
		r.StartDate = planner.StartOfDay(d)
		r.Schedule = planner.Schedule(r.Plan, r.StartDate)
	}
}

func WithGeneratedAt(t time.Time) PlanOption {
	return func(r *domain.PlanRecord) {
		r.GeneratedAt = t
	}
}

func WithPlanInput(in planner.Input) PlanOption {
	return func(r *domain.PlanRecord) {
		r.Persona = in.Persona
		r.WorkType = in.WorkType
		r.Frequency = in.Frequency
		r.TimeWasters = in.TimeWasters
		r.Goal = in.Goal
		r.Plan = planner.Generate90DayPlan(mustCatalog().Activities, in)
		r.Schedule = planner.Schedule(r.Plan, r.StartDate)
	}
}

// NewTestPlanRecord builds a plan from the embedded catalog for a technical
// power optimizer practicing daily, starting today.
func NewTestPlanRecord(userID string, opts ...PlanOption) *domain.PlanRecord {
	now := time.Now().UTC().Truncate(time.Second)
	in := planner.Input{
		Persona:     domain.PersonaPowerOptimizer,
		WorkType:    "technical",
		Frequency:   domain.FrequencyDaily,
		TimeWasters: []string{"email"},
		Goal:        "save-time",
	}
	plan := planner.Generate90DayPlan(mustCatalog().Activities, in)
	start := planner.StartOfDay(now)
	r := &domain.PlanRecord{
		ID:          uuid.New().String(),
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
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func mustCatalog() *catalog.Catalog {
	c, err := catalog.Default()
	if err != nil {
		panic(err)
	}
	return c
}
