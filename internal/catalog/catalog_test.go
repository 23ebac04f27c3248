package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	intro := c.Intro()
	require.NotNil(t, intro)
	assert.Equal(t, domain.QuestionIDWelcome, intro.ID)
	assert.Equal(t, domain.QuestionIDWorkType, intro.Next)

	exp, ok := c.Question(domain.QuestionIDExperience)
	require.True(t, ok)
	assert.Equal(t, domain.QuestionIDConcerns, exp.NextFor("never"))
	assert.Equal(t, domain.QuestionIDConcerns, exp.NextFor("once-twice"))
	assert.Equal(t, domain.QuestionIDCurrentTools, exp.NextFor("power-user"))

	assert.NotEmpty(t, c.Activities)
	for _, a := range c.Activities {
		assert.NotEmpty(t, a.Outcomes, "activity %s should list outcomes", a.ID)
	}
}

func TestDefault_FrequencyOptionsMatchKnownTags(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{
		domain.FrequencyDaily,
		domain.FrequencyEveryOther,
		domain.FrequencyThreeTimes,
		domain.FrequencyTwice,
		domain.FrequencyWeekly,
	}, c.OptionIDs(domain.QuestionIDEngagementFrequency))
}

func TestDefault_EveryPersonaHasActivitiesInEveryPhase(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	for _, p := range domain.AllPersonas {
		for phase := 1; phase <= domain.NumPhases; phase++ {
			found := false
			for _, a := range c.Activities {
				if a.Phase == phase && a.AppliesToPersona(p) {
					found = true
					break
				}
			}
			assert.True(t, found, "persona %s has no phase %d activities", p, phase)
		}
	}
}

func TestOptionLabel_FallsBackToID(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Every day", c.OptionLabel(domain.QuestionIDEngagementFrequency, "daily"))
	assert.Equal(t, "hourly", c.OptionLabel(domain.QuestionIDEngagementFrequency, "hourly"))
	assert.Equal(t, "x", c.OptionLabel("missing", "x"))
}

func TestLoadFiles_OverridesActivities(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "activities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- id: only-one
  title: The only activity
  description: Just this one.
  duration: 5
  difficulty: easy
  type: exercise
  phase: 1
  personas: [all]
  work_types: [all]
`), 0o644))

	c, err := LoadFiles("", path)
	require.NoError(t, err)
	require.Len(t, c.Activities, 1)
	assert.Equal(t, "only-one", c.Activities[0].ID)
	assert.NotNil(t, c.Intro(), "questions still come from the embedded default")
}

func TestLoadFiles_MissingFile(t *testing.T) {
	_, err := LoadFiles(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.Error(t, err)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("{not: [valid"), []byte("[]"))
	assert.Error(t, err)
}
