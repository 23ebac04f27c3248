package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswers_PreservesOrderAndShape(t *testing.T) {
	answers, err := parseAnswers([]byte(powerOptimizerYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"work-type", "ai-experience", "current-tools",
		"time-wasters", "engagement-frequency", "success-metric",
	}, answers.Keys())
	assert.Equal(t, "technical", answers.Single("work-type"))
	assert.Equal(t, []string{"email", "research"}, answers.Multi("time-wasters"))

	a, ok := answers.Get("current-tools")
	require.True(t, ok)
	assert.True(t, a.IsMulti())
}

func TestParseAnswers_AcceptsJSON(t *testing.T) {
	answers, err := parseAnswers([]byte(`{"work-type": "creative", "time-wasters": ["writing"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"work-type", "time-wasters"}, answers.Keys())
}

func TestParseAnswers_EmptyListStaysMulti(t *testing.T) {
	answers, err := parseAnswers([]byte("time-wasters: []\n"))
	require.NoError(t, err)
	a, ok := answers.Get("time-wasters")
	require.True(t, ok)
	assert.True(t, a.IsMulti())
	assert.Empty(t, a.Values())
}

func TestParseAnswers_Empty(t *testing.T) {
	answers, err := parseAnswers(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, answers.Len())
}

func TestParseAnswers_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"not a mapping", "- technical\n", "must be a mapping"},
		{"nested mapping", "work-type:\n  id: technical\n", "expected an option or a list"},
		{"list of mappings", "time-wasters:\n  - id: email\n", "options must be strings"},
		{"invalid yaml", "work-type: [\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAnswers([]byte(tt.body))
			require.Error(t, err)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestReadAnswersFile_Missing(t *testing.T) {
	_, err := readAnswersFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading answers file")
}

