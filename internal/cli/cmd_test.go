package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/aionboard/internal/auth"
	"github.com/alexanderramin/aionboard/internal/catalog"
	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/planner"
	"github.com/alexanderramin/aionboard/internal/repository"
	"github.com/alexanderramin/aionboard/internal/service"
	"github.com/alexanderramin/aionboard/internal/survey"
	"github.com/alexanderramin/aionboard/internal/testutil"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	cat, err := catalog.Default()
	require.NoError(t, err)

	profiles := repository.NewSQLiteProfileRepo(database)
	drafts := repository.NewSQLiteDraftRepo(database)
	plans := repository.NewSQLitePlanRepo(database)
	progress := repository.NewSQLiteProgressRepo(database)
	uow := testutil.NewTestUoW(database)
	gen := planner.New(cat.Activities)

	now := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)
	return &App{
		Catalog:    cat,
		Surveys:    service.NewSurveyService(cat, drafts),
		Onboarding: service.NewOnboardingService(cat, gen, profiles, drafts, uow),
		Plans:      service.NewPlanService(gen, profiles, plans, uow),
		Progress:   service.NewProgressService(profiles, plans, progress),
		UserID:     "cli-user",
		Email:      "cli@example.com",
		Now:        func() time.Time { return now },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stripANSI(buf.String()), err
}

const powerOptimizerYAML = `work-type: technical
ai-experience: power-user
current-tools: [code-assistant]
time-wasters:
  - email
  - research
engagement-frequency: daily
success-metric: save-time
`

func writeAnswersFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func onboardFromFile(t *testing.T, app *App) {
	t.Helper()
	_, err := executeCmd(t, app, "survey", "--answers", writeAnswersFile(t, powerOptimizerYAML), "--start", "2026-01-05")
	require.NoError(t, err)
}

func TestSurveyCmd_AnswersFile(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "survey", "--answers", writeAnswersFile(t, powerOptimizerYAML), "--start", "2026-01-05")
	require.NoError(t, err)
	assert.Contains(t, out, "Power Optimizer")
	assert.Contains(t, out, "PHASE 1")
	assert.Contains(t, out, "Mon Jan 5")

	profile, err := app.Onboarding.Profile(context.Background(), "cli-user")
	require.NoError(t, err)
	assert.Equal(t, domain.PersonaPowerOptimizer, profile.Persona)
	assert.Equal(t, "cli@example.com", profile.Email)
}

func TestSurveyCmd_AnswersFileRejectsUnknownOption(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "survey", "--answers", writeAnswersFile(t, "work-type: astronaut\n"))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.ErrorIs(t, err, survey.ErrUnknownOption)
}

func TestSurveyCmd_BadStartDate(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "survey", "--answers", writeAnswersFile(t, powerOptimizerYAML), "--start", "05/01/2026")
	assert.ErrorContains(t, err, "invalid start date")
}

func TestSurveyCmd_NonInteractiveNeedsAnswers(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return false }

	_, err := executeCmd(t, app, "survey")
	assert.ErrorContains(t, err, "--answers")
}

// scriptedAsker answers questions from a script and records what was asked.
type scriptedAsker struct {
	answers map[string][]string
	// interrupts lists, per question, errors to return before answering.
	interrupts map[string][]error
	asked      []string
}

func (s *scriptedAsker) interrupt(id string) error {
	errs := s.interrupts[id]
	if len(errs) == 0 {
		return nil
	}
	s.interrupts[id] = errs[1:]
	return errs[0]
}

func (s *scriptedAsker) Intro(q *domain.Question) error {
	s.asked = append(s.asked, q.ID)
	return s.interrupt(q.ID)
}

func (s *scriptedAsker) Single(q *domain.Question, _ bool) (string, error) {
	s.asked = append(s.asked, q.ID)
	if err := s.interrupt(q.ID); err != nil {
		return "", err
	}
	return s.answers[q.ID][0], nil
}

func (s *scriptedAsker) Multi(q *domain.Question, _ []string, _ bool) ([]string, error) {
	s.asked = append(s.asked, q.ID)
	if err := s.interrupt(q.ID); err != nil {
		return nil, err
	}
	return s.answers[q.ID], nil
}

func innovationDriverScript() *scriptedAsker {
	return &scriptedAsker{
		answers: map[string][]string{
			"work-type":            {"management"},
			"ai-experience":        {"power-user"},
			"current-tools":        {"code-assistant", "meeting-notes"},
			"time-wasters":         {"email"},
			"engagement-frequency": {"twice"},
			"success-metric":       {"help-team"},
		},
		interrupts: map[string][]error{},
	}
}

func TestSurveyCmd_Wizard(t *testing.T) {
	app := testApp(t)
	asker := innovationDriverScript()
	app.IsInteractive = func() bool { return true }
	app.Asker = asker

	out, err := executeCmd(t, app, "survey")
	require.NoError(t, err)
	assert.Contains(t, out, "Innovation Driver")
	assert.Equal(t, []string{
		"welcome", "work-type", "ai-experience", "current-tools",
		"time-wasters", "engagement-frequency", "success-metric",
	}, asker.asked)

	rec, err := app.Plans.Current(context.Background(), "cli-user")
	require.NoError(t, err)
	assert.Equal(t, "management", rec.WorkType)
	assert.Equal(t, domain.FrequencyTwice, rec.Frequency)
}

func TestSurveyCmd_WizardGoesBack(t *testing.T) {
	app := testApp(t)
	asker := innovationDriverScript()
	asker.interrupts["ai-experience"] = []error{errGoBack}
	app.IsInteractive = func() bool { return true }
	app.Asker = asker

	_, err := executeCmd(t, app, "survey")
	require.NoError(t, err)
	assert.Equal(t, []string{"welcome", "work-type", "ai-experience", "work-type", "ai-experience"}, asker.asked[:5])
}

func TestSurveyCmd_WizardReasksEmptySelection(t *testing.T) {
	app := testApp(t)
	asker := innovationDriverScript()
	asker.answers["time-wasters"] = nil
	app.IsInteractive = func() bool { return true }
	app.Asker = &emptyOnceAsker{scriptedAsker: asker, question: "time-wasters", then: []string{"meetings"}}

	out, err := executeCmd(t, app, "survey")
	require.NoError(t, err)
	assert.Contains(t, out, survey.ErrEmptySelection.Error())

	rec, err := app.Plans.Current(context.Background(), "cli-user")
	require.NoError(t, err)
	assert.Equal(t, []string{"meetings"}, rec.TimeWasters)
}

// emptyOnceAsker submits an empty selection for question the first time it
// is asked, then answers with then.
type emptyOnceAsker struct {
	*scriptedAsker
	question string
	then     []string
	seen     bool
}

func (a *emptyOnceAsker) Multi(q *domain.Question, selected []string, canGoBack bool) ([]string, error) {
	if q.ID == a.question {
		if a.seen {
			return a.then, nil
		}
		a.seen = true
		return nil, nil
	}
	return a.scriptedAsker.Multi(q, selected, canGoBack)
}

func TestSurveyCmd_AbortSavesAndResumes(t *testing.T) {
	app := testApp(t)
	asker := innovationDriverScript()
	asker.interrupts["engagement-frequency"] = []error{huh.ErrUserAborted}
	app.IsInteractive = func() bool { return true }
	app.Asker = asker

	out, err := executeCmd(t, app, "survey")
	require.NoError(t, err)
	assert.Contains(t, out, "Survey saved")

	out, err = executeCmd(t, app, "survey", "status")
	require.NoError(t, err)
	q, _ := app.Catalog.Question("engagement-frequency")
	assert.Contains(t, out, "Current question: "+q.Prompt)
	assert.Contains(t, out, "Management")

	asker.asked = nil
	out, err = executeCmd(t, app, "survey")
	require.NoError(t, err)
	assert.Equal(t, []string{"engagement-frequency", "success-metric"}, asker.asked)
	assert.Contains(t, out, "Innovation Driver")

	out, err = executeCmd(t, app, "survey", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No survey in progress.")
}

func TestSurveyCmd_Restart(t *testing.T) {
	app := testApp(t)
	asker := innovationDriverScript()
	asker.interrupts["time-wasters"] = []error{huh.ErrUserAborted}
	app.IsInteractive = func() bool { return true }
	app.Asker = asker

	_, err := executeCmd(t, app, "survey")
	require.NoError(t, err)

	asker.asked = nil
	_, err = executeCmd(t, app, "survey", "--restart")
	require.NoError(t, err)
	assert.Equal(t, "welcome", asker.asked[0])
}

func TestPersonaCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "persona", "--answers", writeAnswersFile(t, powerOptimizerYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "Power Optimizer")

	_, err = app.Onboarding.Profile(context.Background(), "cli-user")
	assert.ErrorIs(t, err, service.ErrNotOnboarded, "persona --answers must not save anything")

	_, err = executeCmd(t, app, "persona")
	assert.ErrorIs(t, err, service.ErrNotOnboarded)

	onboardFromFile(t, app)
	out, err = executeCmd(t, app, "persona")
	require.NoError(t, err)
	assert.Contains(t, out, "Power Optimizer")
}

func TestPersonaCmd_All(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "persona", "--all")
	require.NoError(t, err)
	for _, p := range domain.AllPersonas {
		assert.Contains(t, out, string(p))
	}
}

func TestPlanCmd_ShowRequiresPlan(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "plan", "show")
	assert.ErrorIs(t, err, service.ErrNoPlan)
}

func TestPlanCmd_ShowAndJSON(t *testing.T) {
	app := testApp(t)
	onboardFromFile(t, app)

	out, err := executeCmd(t, app, "plan", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Power Optimizer")
	assert.Contains(t, out, "Mon Jan 5 → Sat Apr 4")

	out, err = executeCmd(t, app, "plan", "show", "--json")
	require.NoError(t, err)
	var rec domain.PlanRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "cli-user", rec.UserID)
	assert.True(t, rec.IsCurrent)
}

func TestPlanCmd_Generate(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan", "generate", "--json",
		"--persona", "eager-beginner", "--work-type", "creative",
		"--frequency", "weekly", "--time-waster", "writing")
	require.NoError(t, err)

	var got domain.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	want := planner.Generate90DayPlan(app.Catalog.Activities, planner.Input{
		Persona:     domain.PersonaEagerBeginner,
		WorkType:    "creative",
		Frequency:   domain.FrequencyWeekly,
		TimeWasters: []string{"writing"},
	})
	assert.Equal(t, want.TotalActivities(), got.TotalActivities())
	for n := 1; n <= domain.NumPhases; n++ {
		assert.LessOrEqual(t, len(got.Phase(n).Activities), planner.PhaseCap(domain.FrequencyWeekly))
	}

	_, err = executeCmd(t, app, "plan", "show")
	assert.ErrorIs(t, err, service.ErrNoPlan, "generate is a preview")
}

func TestPlanCmd_GenerateRejectsUnknownPersona(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "plan", "generate", "--persona", "wizard")
	assert.ErrorContains(t, err, `unknown persona "wizard"`)
}

func TestPlanCmd_RegenerateAndHistory(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "regenerate")
	assert.ErrorIs(t, err, service.ErrNotOnboarded)

	onboardFromFile(t, app)
	out, err := executeCmd(t, app, "plan", "regenerate", "--start", "2026-02-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated plan")
	assert.Contains(t, out, "Sun Feb 1")

	out, err = executeCmd(t, app, "plan", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "current")
	recs, err := app.Plans.History(context.Background(), "cli-user")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestProgressCmd_DoneUndoDashboard(t *testing.T) {
	app := testApp(t)
	onboardFromFile(t, app)
	rec, err := app.Plans.Current(context.Background(), "cli-user")
	require.NoError(t, err)
	first := rec.Schedule[0].Activity

	out, err := executeCmd(t, app, "progress", "done", first.ID, "--note", "worked well")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed "+first.ID)

	out, err = executeCmd(t, app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Day: 2/90")
	assert.Contains(t, out, "1 of ")

	out, err = executeCmd(t, app, "dashboard", "--json")
	require.NoError(t, err)
	var d service.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 1, d.Completed)
	assert.True(t, d.CompletedIDs[first.ID])

	_, err = executeCmd(t, app, "progress", "undo", first.ID)
	require.NoError(t, err)
	_, err = executeCmd(t, app, "progress", "undo", first.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = executeCmd(t, app, "progress", "done", "not-in-plan")
	assert.ErrorIs(t, err, service.ErrActivityNotInPlan)

	_, err = executeCmd(t, app, "progress", "done")
	assert.Error(t, err)
}

func TestCalendarCmd(t *testing.T) {
	app := testApp(t)
	onboardFromFile(t, app)

	out, err := executeCmd(t, app, "calendar", "--month", "2026-01")
	require.NoError(t, err)
	assert.Contains(t, out, "THU JAN 1 – SAT JAN 31")
	assert.Contains(t, out, "Week 1")
	assert.Contains(t, out, "Mon Jan 5")

	_, err = executeCmd(t, app, "calendar", "--month", "January")
	assert.ErrorContains(t, err, "invalid month")

	out, err = executeCmd(t, app, "calendar", "--month", "2025-06")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing scheduled")
}

func TestCalendarRange(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	from, to, err := calendarRange(now, "", 7)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC), to)

	from, to, err = calendarRange(now, "2026-02", 7)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), to)

	_, _, err = calendarRange(now, "", 0)
	assert.Error(t, err)
}

func TestTimelineCmd(t *testing.T) {
	app := testApp(t)
	onboardFromFile(t, app)

	out, err := executeCmd(t, app, "timeline")
	require.NoError(t, err)
	assert.Contains(t, out, "▶ Phase 1")
	assert.Contains(t, out, "Phase 3")
}

func TestTokenCmd(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "token")
	assert.ErrorContains(t, err, "jwt_secret")

	app.Tokens = auth.NewTokenManager("cli-secret", time.Hour)
	root := NewRootCmd(app)
	stdout := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"token", "--user", "someone", "--email", "someone@example.com"})
	require.NoError(t, root.Execute())

	claims, err := app.Tokens.Verify(string(bytes.TrimSpace(stdout.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, "someone", claims.Subject)
	assert.Equal(t, "someone@example.com", claims.Email)
}

func TestServeCmd_RequiresSecret(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "serve")
	assert.ErrorContains(t, err, "jwt_secret")
}

func TestPlanBrowseCmd(t *testing.T) {
	app := testApp(t)
	onboardFromFile(t, app)

	app.IsInteractive = func() bool { return false }
	_, err := executeCmd(t, app, "plan", "browse")
	assert.ErrorContains(t, err, "needs a terminal")

	var ran tea.Model
	app.IsInteractive = func() bool { return true }
	app.RunProgram = func(m tea.Model, _ io.Writer) error {
		ran = m
		return nil
	}
	_, err = executeCmd(t, app, "plan", "browse")
	require.NoError(t, err)
	require.IsType(t, planBrowser{}, ran)
	assert.Equal(t, "cli-user", ran.(planBrowser).rec.UserID)
}
