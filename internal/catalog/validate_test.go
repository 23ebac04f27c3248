package catalog

import (
	"strings"
	"testing"

	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func minimalQuestions() []domain.Question {
	return []domain.Question{
		{ID: "welcome", Type: domain.QuestionIntro, Next: "pick"},
		{
			ID:      "pick",
			Type:    domain.QuestionSingleChoice,
			Options: []domain.Option{{ID: "a"}, {ID: "b"}},
			Next:    "done",
		},
		{ID: "done", Type: domain.QuestionComplete},
	}
}

func minimalActivity() domain.Activity {
	return domain.Activity{
		ID: "act", Title: "Act", DurationMin: 10,
		Difficulty: domain.DifficultyEasy, Type: domain.ActivityExercise, Phase: 1,
		Personas: []string{"all"}, WorkTypes: []string{"all"},
	}
}

func errorsContain(errs []error, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Error(), substr) {
			return true
		}
	}
	return false
}

func TestValidate_MinimalCatalogIsValid(t *testing.T) {
	errs := Validate(&Catalog{Questions: minimalQuestions(), Activities: []domain.Activity{minimalActivity()}})
	assert.Empty(t, errs)
}

func TestValidate_MissingSuccessor(t *testing.T) {
	qs := minimalQuestions()
	qs[1].Next = ""
	qs[1].Branching = map[string]string{"a": "done"}

	errs := Validate(&Catalog{Questions: qs})
	assert.True(t, errorsContain(errs, `option "b" has no successor`), "%v", errs)
}

func TestValidate_FullBranchingWithoutNextIsValid(t *testing.T) {
	qs := minimalQuestions()
	qs[1].Next = ""
	qs[1].Branching = map[string]string{"a": "done", "b": "done"}

	assert.Empty(t, Validate(&Catalog{Questions: qs}))
}

func TestValidate_DanglingTargets(t *testing.T) {
	qs := minimalQuestions()
	qs[1].Next = "nowhere"
	qs[1].Branching = map[string]string{"a": "void"}

	errs := Validate(&Catalog{Questions: qs})
	assert.True(t, errorsContain(errs, `next "nowhere" does not exist`))
	assert.True(t, errorsContain(errs, `branch "a" -> "void" does not exist`))
}

func TestValidate_BranchKeyMustBeOption(t *testing.T) {
	qs := minimalQuestions()
	qs[1].Branching = map[string]string{"zzz": "done"}

	errs := Validate(&Catalog{Questions: qs})
	assert.True(t, errorsContain(errs, `branching key "zzz" is not an option`))
}

func TestValidate_MultiChoiceCannotBranch(t *testing.T) {
	qs := minimalQuestions()
	qs[1].Type = domain.QuestionMultiChoice
	qs[1].Branching = map[string]string{"a": "done"}

	errs := Validate(&Catalog{Questions: qs})
	assert.True(t, errorsContain(errs, "multi-choice questions cannot branch"))
}

func TestValidate_IntroAndCompleteCardinality(t *testing.T) {
	qs := append(minimalQuestions(), domain.Question{ID: "done-2", Type: domain.QuestionComplete})
	qs[0].Type = domain.QuestionSingleChoice
	qs[0].Options = []domain.Option{{ID: "x"}}

	errs := Validate(&Catalog{Questions: qs})
	assert.True(t, errorsContain(errs, "exactly one intro question is required, found 0"))
	assert.True(t, errorsContain(errs, "exactly one complete question is required, found 2"))
}

func TestValidate_DuplicateIDs(t *testing.T) {
	qs := append(minimalQuestions(), domain.Question{ID: "pick", Type: domain.QuestionSingleChoice, Options: []domain.Option{{ID: "a"}, {ID: "a"}}, Next: "done"})

	errs := Validate(&Catalog{Questions: qs, Activities: []domain.Activity{minimalActivity(), minimalActivity()}})
	assert.True(t, errorsContain(errs, `duplicate id "pick"`))
	assert.True(t, errorsContain(errs, `duplicate option id "a"`))
	assert.True(t, errorsContain(errs, "act: duplicate id"))
}

func TestValidate_ActivityFields(t *testing.T) {
	bad := minimalActivity()
	bad.Difficulty = "extreme"
	bad.Type = "lecture"
	bad.Phase = 4
	bad.DurationMin = 0
	bad.Personas = []string{"wizard"}
	bad.WorkTypes = nil

	errs := Validate(&Catalog{Questions: minimalQuestions(), Activities: []domain.Activity{bad}})
	for _, want := range []string{
		`unknown difficulty "extreme"`,
		`unknown type "lecture"`,
		"phase must be 1-3, got 4",
		"duration must be positive",
		`unknown persona "wizard"`,
		"at least one work type is required",
	} {
		assert.True(t, errorsContain(errs, want), "missing %q in %v", want, errs)
	}
}

func TestNew_ReturnsJoinedError(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorContains(t, err, "at least one question is required")
}
