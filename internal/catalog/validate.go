package catalog

import (
	"fmt"

	"github.com/alexanderramin/aionboard/internal/domain"
)

// Validate checks the question graph and activity catalog for structural
// errors. Returns a slice of errors (empty if valid).
func Validate(c *Catalog) []error {
	var errs []error
	errs = append(errs, validateQuestions(c.Questions)...)
	errs = append(errs, validateActivities(c.Activities)...)
	return errs
}

func validateQuestions(questions []domain.Question) []error {
	var errs []error

	if len(questions) == 0 {
		return []error{fmt.Errorf("at least one question is required")}
	}

	ids := map[string]bool{}
	var intros, completes int
	for i, q := range questions {
		if q.ID == "" {
			errs = append(errs, fmt.Errorf("question[%d]: id is required", i))
		}
		if ids[q.ID] {
			errs = append(errs, fmt.Errorf("question[%d]: duplicate id %q", i, q.ID))
		}
		ids[q.ID] = true
		if !domain.ValidQuestionTypes[q.Type] {
			errs = append(errs, fmt.Errorf("question %q: unknown type %q", q.ID, q.Type))
		}
		switch q.Type {
		case domain.QuestionIntro:
			intros++
		case domain.QuestionComplete:
			completes++
		}
	}
	if intros != 1 {
		errs = append(errs, fmt.Errorf("exactly one intro question is required, found %d", intros))
	}
	if completes != 1 {
		errs = append(errs, fmt.Errorf("exactly one complete question is required, found %d", completes))
	}

	for _, q := range questions {
		errs = append(errs, validateEdges(q, ids)...)
	}
	return errs
}

// validateEdges checks that a question resolves to exactly one existing
// successor for every way it can be left.
func validateEdges(q domain.Question, ids map[string]bool) []error {
	var errs []error

	switch q.Type {
	case domain.QuestionComplete:
		if q.Next != "" || len(q.Branching) > 0 {
			errs = append(errs, fmt.Errorf("question %q: complete question must not have successors", q.ID))
		}
		return errs
	case domain.QuestionIntro:
		if q.Next == "" {
			errs = append(errs, fmt.Errorf("question %q: intro requires next", q.ID))
		}
	case domain.QuestionSingleChoice, domain.QuestionMultiChoice:
		if len(q.Options) == 0 {
			errs = append(errs, fmt.Errorf("question %q: at least one option is required", q.ID))
		}
		optIDs := map[string]bool{}
		for i, o := range q.Options {
			if o.ID == "" {
				errs = append(errs, fmt.Errorf("question %q: option[%d]: id is required", q.ID, i))
			}
			if optIDs[o.ID] {
				errs = append(errs, fmt.Errorf("question %q: duplicate option id %q", q.ID, o.ID))
			}
			optIDs[o.ID] = true
		}
		if q.Type == domain.QuestionMultiChoice && len(q.Branching) > 0 {
			errs = append(errs, fmt.Errorf("question %q: multi-choice questions cannot branch", q.ID))
		}
		for opt := range q.Branching {
			if !optIDs[opt] {
				errs = append(errs, fmt.Errorf("question %q: branching key %q is not an option", q.ID, opt))
			}
		}
		if q.Next == "" {
			for _, o := range q.Options {
				if _, ok := q.Branching[o.ID]; !ok {
					errs = append(errs, fmt.Errorf("question %q: option %q has no successor", q.ID, o.ID))
				}
			}
		}
	}

	if q.Next != "" && !ids[q.Next] {
		errs = append(errs, fmt.Errorf("question %q: next %q does not exist", q.ID, q.Next))
	}
	for opt, target := range q.Branching {
		if !ids[target] {
			errs = append(errs, fmt.Errorf("question %q: branch %q -> %q does not exist", q.ID, opt, target))
		}
	}
	return errs
}

func validateActivities(activities []domain.Activity) []error {
	var errs []error

	ids := map[string]bool{}
	for i, a := range activities {
		label := a.ID
		if label == "" {
			label = fmt.Sprintf("activity[%d]", i)
			errs = append(errs, fmt.Errorf("%s: id is required", label))
		}
		if ids[a.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id", label))
		}
		ids[a.ID] = true

		if a.Title == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", label))
		}
		if a.DurationMin <= 0 {
			errs = append(errs, fmt.Errorf("%s: duration must be positive", label))
		}
		if a.Difficulty.Rank() > domain.DifficultyAdvanced.Rank() {
			errs = append(errs, fmt.Errorf("%s: unknown difficulty %q", label, a.Difficulty))
		}
		if !domain.ValidActivityTypes[a.Type] {
			errs = append(errs, fmt.Errorf("%s: unknown type %q", label, a.Type))
		}
		if a.Phase < 1 || a.Phase > domain.NumPhases {
			errs = append(errs, fmt.Errorf("%s: phase must be 1-%d, got %d", label, domain.NumPhases, a.Phase))
		}
		if len(a.Personas) == 0 {
			errs = append(errs, fmt.Errorf("%s: at least one persona is required", label))
		}
		for _, p := range a.Personas {
			if p != domain.Wildcard && !domain.Persona(p).Valid() {
				errs = append(errs, fmt.Errorf("%s: unknown persona %q", label, p))
			}
		}
		if len(a.WorkTypes) == 0 {
			errs = append(errs, fmt.Errorf("%s: at least one work type is required", label))
		}
	}
	return errs
}
