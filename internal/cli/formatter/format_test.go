package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/service"
)

func testPlan() domain.Plan {
	return domain.Plan{
		Phase1: domain.PhasePlan{Title: "Foundation", Subtitle: "Build the habit", Activities: []domain.Activity{
			{ID: "first-prompt", Title: "Write your first prompt", DurationMin: 15, Difficulty: domain.DifficultyEasy, Type: domain.ActivityExercise},
			{ID: "summarize-thread", Title: "Summarize an email thread", DurationMin: 20, Difficulty: domain.DifficultyEasy, Type: domain.ActivityExperiment},
		}},
		Phase2: domain.PhasePlan{Title: "Integration", Activities: []domain.Activity{
			{ID: "weekly-report", Title: "Draft a weekly report", DurationMin: 45, Difficulty: domain.DifficultyMedium, Type: domain.ActivityChallenge},
		}},
		Phase3: domain.PhasePlan{Title: "Mastery"},
	}
}

func TestFormatPlan(t *testing.T) {
	out := stripANSI(FormatPlan(testPlan(), map[string]bool{"first-prompt": true}))

	assert.Contains(t, out, "PHASE 1: FOUNDATION")
	assert.Contains(t, out, "Build the habit")
	assert.Contains(t, out, "✔ Write your first prompt first-pr")
	assert.Contains(t, out, "○ Summarize an email thread")
	assert.Contains(t, out, "● MEDIUM")
	assert.Contains(t, out, "45m")
	assert.Contains(t, out, "PHASE 3: MASTERY")
	assert.Contains(t, out, "No activities matched this phase.")
}

func TestFormatPlan_Empty(t *testing.T) {
	out := stripANSI(FormatPlan(domain.Plan{}, nil))
	assert.Contains(t, out, "This plan has no activities")
}

func TestFormatPlanRecord(t *testing.T) {
	rec := &domain.PlanRecord{
		ID:        "plan-1",
		Persona:   domain.PersonaEagerBeginner,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Plan:      testPlan(),
	}
	out := stripANSI(FormatPlanRecord(rec, nil))
	assert.Contains(t, out, "Eager Beginner")
	assert.Contains(t, out, "Thu Jan 1 → Tue Mar 31")
	assert.Contains(t, out, "Activities: 3")
}

func TestFormatPlanHistory(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recs := []*domain.PlanRecord{
		{ID: "aaaaaaaa-1111", Persona: domain.PersonaPowerOptimizer, Frequency: "every-other", GeneratedAt: now, IsCurrent: true, Plan: testPlan()},
		{ID: "bbbbbbbb-2222", Persona: domain.PersonaEagerBeginner, Frequency: "weekly", GeneratedAt: now.AddDate(0, 0, -3)},
	}
	out := stripANSI(FormatPlanHistory(recs, now))
	assert.Contains(t, out, "aaaaaaaa")
	assert.NotContains(t, out, "aaaaaaaa-1111")
	assert.Contains(t, out, "Every other")
	assert.Contains(t, out, "current")
	assert.Contains(t, out, "3d ago")

	assert.Equal(t, "No plans yet.\n", stripANSI(FormatPlanHistory(nil, now)))
}

func TestFormatCalendar(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := testPlan()
	entries := []domain.ScheduledActivity{
		{Activity: p.Phase1.Activities[0], Phase: 1, Day: 1, Date: start},
		{Activity: p.Phase1.Activities[1], Phase: 1, Day: 4, Date: start.AddDate(0, 0, 3)},
		{Activity: p.Phase2.Activities[0], Phase: 2, Day: 31, Date: start.AddDate(0, 0, 30)},
	}
	out := stripANSI(FormatCalendar(entries, map[string]bool{"first-prompt": true}, start))

	assert.Contains(t, out, "Week 1  · Phase 1")
	assert.Contains(t, out, "Week 5  · Phase 2")
	assert.Contains(t, out, "✔ Thu Jan 1")
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "In 3d")
	assert.Contains(t, out, "Draft a weekly report")

	assert.Contains(t, stripANSI(FormatCalendar(nil, nil, start)), "Nothing scheduled")
}

func TestFormatTimeline(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := &domain.PlanRecord{StartDate: start, Plan: testPlan()}

	out := stripANSI(FormatTimeline(rec, map[string]bool{"first-prompt": true}, start.AddDate(0, 0, 35)))
	assert.Contains(t, out, "│ Phase 1 Foundation")
	assert.Contains(t, out, "▶ Phase 2 Integration")
	assert.Contains(t, out, "1/2 done")
	assert.Contains(t, out, "Sat Jan 31 → Sun Mar 1")
}

func TestFormatPersona(t *testing.T) {
	out := stripANSI(FormatPersona(domain.ProfileFor(domain.PersonaInnovationDriver)))
	assert.Contains(t, out, "YOUR AI PERSONA")
	assert.Contains(t, out, "Innovation Driver")
	assert.Contains(t, out, "innovation-driver")
	assert.Contains(t, out, "Focus:")
}

func TestFormatPersonaList(t *testing.T) {
	out := stripANSI(FormatPersonaList(domain.AllPersonas))
	for _, p := range domain.AllPersonas {
		assert.Contains(t, out, string(p))
	}
}

func TestFormatAnswers(t *testing.T) {
	answers := domain.NewAnswerSet()
	answers.Set("work-type", domain.SingleAnswer("technical"))
	answers.Set("time-wasters", domain.MultiAnswer([]string{"email", "research"}))

	out := stripANSI(FormatAnswers(answers, func(_, id string) string {
		if id == "technical" {
			return "Technical"
		}
		return ""
	}))
	assert.Contains(t, out, "work-type     Technical")
	assert.Contains(t, out, "time-wasters  email, research")
	assert.Contains(t, stripANSI(FormatAnswers(domain.NewAnswerSet(), nil)), "No answers yet.")
}

func TestFormatDashboard(t *testing.T) {
	next := domain.ScheduledActivity{
		Activity: testPlan().Phase1.Activities[1],
		Phase:    1, Day: 4,
		Date: time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC),
	}
	d := &service.Dashboard{
		PersonaProfile: domain.ProfileFor(domain.PersonaPracticalAdopter),
		Total:          3,
		Completed:      1,
		Percent:        100.0 / 3,
		Phases: []service.PhaseProgress{
			{Phase: 1, Title: "Foundation", Total: 2, Completed: 1},
			{Phase: 2, Title: "Integration", Total: 1},
			{Phase: 3, Title: "Mastery"},
		},
		CurrentPhase: 1,
		DayOfPlan:    4,
		Streak:       2,
		Next:         &next,
	}

	out := stripANSI(FormatDashboard(d))
	assert.Contains(t, out, "PROGRESS")
	assert.Contains(t, out, "Practical Adopter")
	assert.Contains(t, out, "4/90")
	assert.Contains(t, out, "2 days")
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "1 of 3 activities")
	assert.Contains(t, out, "▶ 1. Foundation")
	assert.Contains(t, out, "Up next: Summarize an email thread")
}

func TestFormatDashboard_AllDone(t *testing.T) {
	d := &service.Dashboard{Total: 1, Completed: 1, Percent: 100, CurrentPhase: 3}
	out := stripANSI(FormatDashboard(d))
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "Every activity in your plan is complete.")
}

func TestFormatDashboard_EmptyPlan(t *testing.T) {
	out := stripANSI(FormatDashboard(&service.Dashboard{Empty: true}))
	assert.Contains(t, out, "no activities yet")
	assert.NotContains(t, out, "Up next")
}
