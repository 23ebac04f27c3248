package survey

import (
	"testing"

	"github.com/alexanderramin/aionboard/internal/catalog"
	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return NewSession(c)
}

func TestSession_StartsAtWelcome(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, domain.QuestionIDWelcome, s.CurrentID())
	assert.Equal(t, domain.QuestionIntro, s.Current().Type)
	assert.Equal(t, 0, s.Answers().Len())
}

func TestSession_StartMovesToWorkType(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.Start())
	assert.Equal(t, domain.QuestionIDWorkType, s.CurrentID())
}

func TestSession_BeginnerPathBranchesToConcerns(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	require.NoError(t, s.Select("technical"))
	require.NoError(t, s.Select("never"))

	assert.Equal(t, domain.QuestionIDConcerns, s.CurrentID())

	require.NoError(t, s.Select("where-to-start"))
	assert.Equal(t, domain.QuestionIDTimeWasters, s.CurrentID())
}

func TestSession_ExperiencedPathSkipsConcerns(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	require.NoError(t, s.Select("creative"))
	require.NoError(t, s.Select("power-user"))

	assert.Equal(t, domain.QuestionIDCurrentTools, s.CurrentID())
}

func TestSession_FullRunComputesPersona(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	require.NoError(t, s.Select("technical"))
	require.NoError(t, s.Select("power-user"))
	require.NoError(t, s.Toggle("code-assistant"))
	require.NoError(t, s.Continue())
	require.NoError(t, s.Toggle("writing"))
	require.NoError(t, s.Toggle("email"))
	require.NoError(t, s.Continue())
	require.NoError(t, s.Select("daily"))
	require.NoError(t, s.Select("help-team"))

	require.True(t, s.Done())
	res, err := s.Complete()
	require.NoError(t, err)

	assert.Equal(t, domain.PersonaInnovationDriver, res.Persona)
	assert.Equal(t, []string{
		domain.QuestionIDWorkType,
		domain.QuestionIDExperience,
		domain.QuestionIDCurrentTools,
		domain.QuestionIDTimeWasters,
		domain.QuestionIDEngagementFrequency,
		domain.QuestionIDSuccessMetric,
	}, res.Answers.Keys())
	assert.Equal(t, []string{"writing", "email"}, res.Answers.Multi(domain.QuestionIDTimeWasters))
}

func TestSession_ToggleIsMembershipFlip(t *testing.T) {
	s := sessionAtTimeWasters(t)

	require.NoError(t, s.Toggle("email"))
	require.NoError(t, s.Toggle("writing"))
	require.NoError(t, s.Toggle("email"))

	assert.Equal(t, []string{"writing"}, s.Pending())
	assert.Equal(t, domain.QuestionIDTimeWasters, s.CurrentID(), "toggling never advances")
}

func TestSession_ContinueRequiresSelection(t *testing.T) {
	s := sessionAtTimeWasters(t)

	assert.False(t, s.CanContinue())
	assert.ErrorIs(t, s.Continue(), ErrEmptySelection)

	require.NoError(t, s.Toggle("meetings"))
	assert.True(t, s.CanContinue())
	require.NoError(t, s.Continue())
	assert.Equal(t, domain.QuestionIDEngagementFrequency, s.CurrentID())
}

func TestSession_WrongActionForQuestionType(t *testing.T) {
	s := newTestSession(t)

	assert.ErrorIs(t, s.Select("technical"), ErrWrongQuestionType)
	assert.ErrorIs(t, s.Toggle("email"), ErrWrongQuestionType)
	assert.ErrorIs(t, s.Continue(), ErrWrongQuestionType)

	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Start(), ErrWrongQuestionType)
}

func TestSession_UnknownOption(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())

	assert.ErrorIs(t, s.Select("astronaut"), ErrUnknownOption)
	assert.Equal(t, domain.QuestionIDWorkType, s.CurrentID())
	assert.Equal(t, 0, s.Answers().Len())
}

func TestSession_PreviousRemovesLastAnswer(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	require.NoError(t, s.Select("technical"))
	require.NoError(t, s.Select("occasionally"))

	require.NoError(t, s.Previous())

	assert.Equal(t, domain.QuestionIDExperience, s.CurrentID())
	assert.Equal(t, []string{domain.QuestionIDWorkType}, s.Answers().Keys())
}

func TestSession_PreviousAcrossBranchReturnsToAnsweredQuestion(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	require.NoError(t, s.Select("technical"))
	require.NoError(t, s.Select("regularly"))
	require.NoError(t, s.Toggle("chat-assistant"))
	require.NoError(t, s.Continue())

	// On time-wasters; the concerns question was skipped by the branch.
	require.NoError(t, s.Previous())
	assert.Equal(t, domain.QuestionIDCurrentTools, s.CurrentID())
	assert.Empty(t, s.Pending())
}

func TestSession_PreviousWithNoAnswersReturnsToIntro(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())

	require.NoError(t, s.Previous())
	assert.Equal(t, domain.QuestionIDWelcome, s.CurrentID())
}

func TestSession_PreviousDiscardsPendingSelection(t *testing.T) {
	s := sessionAtTimeWasters(t)
	require.NoError(t, s.Toggle("email"))

	require.NoError(t, s.Previous())
	assert.Empty(t, s.Pending())
	assert.NotEqual(t, domain.QuestionIDTimeWasters, s.CurrentID())
}

func TestSession_CompleteBeforeEnd(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Complete()
	assert.ErrorIs(t, err, ErrNotComplete)
}

func TestSession_AnswersReturnsCopy(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Start())
	require.NoError(t, s.Select("technical"))

	a := s.Answers()
	a.Set("tamper", domain.SingleAnswer("x"))

	assert.Equal(t, 1, s.Answers().Len())
}

func TestRestore_ResumesAtSavedQuestion(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	saved := domain.NewAnswerSet()
	saved.Set(domain.QuestionIDWorkType, domain.SingleAnswer("operations"))
	saved.Set(domain.QuestionIDExperience, domain.SingleAnswer("once-twice"))

	s, err := Restore(c, domain.QuestionIDConcerns, saved)
	require.NoError(t, err)

	require.NoError(t, s.Select("privacy"))
	assert.Equal(t, domain.QuestionIDTimeWasters, s.CurrentID())
	assert.Equal(t, 2, saved.Len(), "restore must not alias the caller's answers")
}

func TestRestore_SeedsPendingFromRecordedMultiAnswer(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	saved := domain.NewAnswerSet()
	saved.Set(domain.QuestionIDTimeWasters, domain.MultiAnswer([]string{"email"}))

	s, err := Restore(c, domain.QuestionIDTimeWasters, saved)
	require.NoError(t, err)
	assert.Equal(t, []string{"email"}, s.Pending())
	assert.True(t, s.CanContinue())
}

func TestRestore_UnknownQuestion(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	_, err = Restore(c, "nope", domain.NewAnswerSet())
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func sessionAtTimeWasters(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t)
	require.NoError(t, s.Start())
	require.NoError(t, s.Select("management"))
	require.NoError(t, s.Select("never"))
	require.NoError(t, s.Select("accuracy"))
	require.Equal(t, domain.QuestionIDTimeWasters, s.CurrentID())
	return s
}

func TestSession_ResumePending(t *testing.T) {
	s := sessionAtTimeWasters(t)

	require.NoError(t, s.ResumePending([]string{"email", "meetings", "email"}))
	assert.Equal(t, []string{"email", "meetings"}, s.Pending())

	assert.ErrorIs(t, s.ResumePending([]string{"golf"}), ErrUnknownOption)
	assert.Equal(t, []string{"email", "meetings"}, s.Pending(), "failed resume leaves selection untouched")
}
