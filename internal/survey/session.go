package survey

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/aionboard/internal/domain"
)

var (
	ErrWrongQuestionType = errors.New("action not valid for this question type")
	ErrUnknownOption     = errors.New("unknown option")
	ErrEmptySelection    = errors.New("select at least one option to continue")
	ErrNotComplete       = errors.New("survey is not complete")
	ErrUnknownQuestion   = errors.New("unknown question")
)

// Graph resolves question IDs. *catalog.Catalog satisfies it.
type Graph interface {
	Question(id string) (*domain.Question, bool)
	Intro() *domain.Question
}

// Result is what a finished survey hands to the plan generator's caller.
type Result struct {
	Answers *domain.AnswerSet
	Persona domain.Persona
}

// Session walks a single respondent through the question graph. It is not
// safe for concurrent use; one session belongs to one user answering serially.
type Session struct {
	graph   Graph
	current string
	answers *domain.AnswerSet
	pending []string
}

// NewSession starts a session at the intro question.
func NewSession(g Graph) *Session {
	s := &Session{graph: g, answers: domain.NewAnswerSet()}
	if intro := g.Intro(); intro != nil {
		s.current = intro.ID
	}
	return s
}

// Restore rebuilds a session from a saved position and answer set. The
// pending multi-choice selection is seeded from any recorded answer for the
// current question.
func Restore(g Graph, currentID string, answers *domain.AnswerSet) (*Session, error) {
	q, ok := g.Question(currentID)
	if !ok {
		return nil, fmt.Errorf("restoring survey at %q: %w", currentID, ErrUnknownQuestion)
	}
	s := &Session{graph: g, current: q.ID, answers: answers.Clone()}
	if q.Type == domain.QuestionMultiChoice {
		s.pending = s.answers.Multi(q.ID)
	}
	return s, nil
}

// Current returns the question the respondent is on.
func (s *Session) Current() *domain.Question {
	q, _ := s.graph.Question(s.current)
	return q
}

// CurrentID returns the ID of the current question.
func (s *Session) CurrentID() string {
	return s.current
}

// Answers returns a copy of the answers recorded so far.
func (s *Session) Answers() *domain.AnswerSet {
	return s.answers.Clone()
}

// Pending returns the in-progress multi-choice selection.
func (s *Session) Pending() []string {
	return append([]string(nil), s.pending...)
}

// Done reports whether the session has reached the terminal question.
func (s *Session) Done() bool {
	q := s.Current()
	return q != nil && q.Terminal()
}

// Start leaves the intro question.
func (s *Session) Start() error {
	q, err := s.requireType(domain.QuestionIntro)
	if err != nil {
		return err
	}
	return s.moveTo(q.NextFor(""))
}

// Select answers a single-choice question and advances, following the
// question's branching table when it names the selected option.
func (s *Session) Select(optionID string) error {
	q, err := s.requireType(domain.QuestionSingleChoice)
	if err != nil {
		return err
	}
	if !q.HasOption(optionID) {
		return fmt.Errorf("%q on %q: %w", optionID, q.ID, ErrUnknownOption)
	}
	s.answers.Set(q.ID, domain.SingleAnswer(optionID))
	return s.moveTo(q.NextFor(optionID))
}

// Toggle flips an option in the pending multi-choice selection without
// advancing.
func (s *Session) Toggle(optionID string) error {
	q, err := s.requireType(domain.QuestionMultiChoice)
	if err != nil {
		return err
	}
	if !q.HasOption(optionID) {
		return fmt.Errorf("%q on %q: %w", optionID, q.ID, ErrUnknownOption)
	}
	for i, id := range s.pending {
		if id == optionID {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return nil
		}
	}
	s.pending = append(s.pending, optionID)
	return nil
}

// ResumePending replaces the pending selection on a multi-choice question,
// validating each option. Duplicates are dropped.
func (s *Session) ResumePending(optionIDs []string) error {
	q, err := s.requireType(domain.QuestionMultiChoice)
	if err != nil {
		return err
	}
	pending := make([]string, 0, len(optionIDs))
	seen := make(map[string]bool, len(optionIDs))
	for _, id := range optionIDs {
		if !q.HasOption(id) {
			return fmt.Errorf("%q on %q: %w", id, q.ID, ErrUnknownOption)
		}
		if !seen[id] {
			seen[id] = true
			pending = append(pending, id)
		}
	}
	s.pending = pending
	return nil
}

// CanContinue reports whether Continue would succeed.
func (s *Session) CanContinue() bool {
	q := s.Current()
	return q != nil && q.Type == domain.QuestionMultiChoice && len(s.pending) > 0
}

// Continue records the pending multi-choice selection and advances.
func (s *Session) Continue() error {
	q, err := s.requireType(domain.QuestionMultiChoice)
	if err != nil {
		return err
	}
	if len(s.pending) == 0 {
		return ErrEmptySelection
	}
	s.answers.Set(q.ID, domain.MultiAnswer(s.pending))
	return s.moveTo(q.NextFor(""))
}

// Previous removes the most recently answered question from the answer set
// and returns to it. This rewinds answer history rather than the graph, so a
// question skipped by a branch is never revisited. With nothing answered the
// session returns to the intro.
func (s *Session) Previous() error {
	last, ok := s.answers.RemoveLast()
	if !ok {
		intro := s.graph.Intro()
		if intro == nil {
			return ErrUnknownQuestion
		}
		s.current = intro.ID
		s.pending = nil
		return nil
	}
	return s.moveTo(last)
}

// Complete computes the persona once the terminal question is reached.
func (s *Session) Complete() (Result, error) {
	if !s.Done() {
		return Result{}, ErrNotComplete
	}
	answers := s.answers.Clone()
	return Result{Answers: answers, Persona: CalculatePersona(answers)}, nil
}

func (s *Session) requireType(t domain.QuestionType) (*domain.Question, error) {
	q := s.Current()
	if q == nil {
		return nil, fmt.Errorf("%q: %w", s.current, ErrUnknownQuestion)
	}
	if q.Type != t {
		return nil, fmt.Errorf("%s on %s question %q: %w", t, q.Type, q.ID, ErrWrongQuestionType)
	}
	return q, nil
}

func (s *Session) moveTo(id string) error {
	if _, ok := s.graph.Question(id); !ok {
		return fmt.Errorf("moving to %q: %w", id, ErrUnknownQuestion)
	}
	s.current = id
	s.pending = nil
	return nil
}
