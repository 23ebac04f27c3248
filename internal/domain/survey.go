package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Option is one selectable answer to a choice question.
type Option struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Question is a node in the survey graph. Non-terminal questions resolve their
// successor through Branching (keyed by selected option ID) with Next as the
// fallback.
type Question struct {
	ID        string            `json:"id" yaml:"id"`
	Type      QuestionType      `json:"type" yaml:"type"`
	Prompt    string            `json:"prompt" yaml:"prompt"`
	Subtitle  string            `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Options   []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	Next      string            `json:"next,omitempty" yaml:"next,omitempty"`
	Branching map[string]string `json:"branching,omitempty" yaml:"branching,omitempty"`
}

// HasOption reports whether optionID is one of the question's options.
func (q *Question) HasOption(optionID string) bool {
	return q.Option(optionID) != nil
}

// Option returns the option with the given ID, or nil.
func (q *Question) Option(optionID string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}

// NextFor returns the question that follows when optionID is selected.
// An empty optionID (multi-choice, intro) always resolves through Next.
func (q *Question) NextFor(optionID string) string {
	if optionID != "" {
		if target, ok := q.Branching[optionID]; ok {
			return target
		}
	}
	return q.Next
}

// Terminal reports whether the question ends the survey.
func (q *Question) Terminal() bool {
	return q.Type == QuestionComplete
}

// Answer holds either a single option ID or a list of option IDs.
type Answer struct {
	Single string
	Multi  []string
	multi  bool
}

// SingleAnswer builds a single-choice answer.
func SingleAnswer(id string) Answer {
	return Answer{Single: id}
}

// MultiAnswer builds a multi-choice answer. The slice is copied.
func MultiAnswer(ids []string) Answer {
	cp := make([]string, len(ids))
	copy(cp, ids)
	return Answer{Multi: cp, multi: true}
}

// IsMulti reports whether the answer holds a list.
func (a Answer) IsMulti() bool {
	return a.multi
}

// Values returns the answer as a list regardless of its shape.
func (a Answer) Values() []string {
	if a.multi {
		out := make([]string, len(a.Multi))
		copy(out, a.Multi)
		return out
	}
	if a.Single == "" {
		return nil
	}
	return []string{a.Single}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multi {
		if a.Multi == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Multi)
	}
	return json.Marshal(a.Single)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var ids []string
		if err := json.Unmarshal(trimmed, &ids); err != nil {
			return fmt.Errorf("decoding multi answer: %w", err)
		}
		*a = MultiAnswer(ids)
		return nil
	}
	var id string
	if err := json.Unmarshal(trimmed, &id); err != nil {
		return fmt.Errorf("decoding single answer: %w", err)
	}
	*a = SingleAnswer(id)
	return nil
}

// AnswerSet maps question IDs to answers, remembering the order in which
// questions were first answered. Overwriting an existing answer keeps its
// position. The zero value is an empty, usable set.
type AnswerSet struct {
	order  []string
	values map[string]Answer
}

// NewAnswerSet returns an empty AnswerSet.
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{values: make(map[string]Answer)}
}

// Set records an answer for questionID.
func (s *AnswerSet) Set(questionID string, a Answer) {
	if s.values == nil {
		s.values = make(map[string]Answer)
	}
	if _, exists := s.values[questionID]; !exists {
		s.order = append(s.order, questionID)
	}
	s.values[questionID] = a
}

// Get returns the answer for questionID.
func (s *AnswerSet) Get(questionID string) (Answer, bool) {
	if s == nil || s.values == nil {
		return Answer{}, false
	}
	a, ok := s.values[questionID]
	return a, ok
}

// Single returns the single-choice value for questionID, or "" when the
// question is unanswered or was answered with a list.
func (s *AnswerSet) Single(questionID string) string {
	a, ok := s.Get(questionID)
	if !ok || a.IsMulti() {
		return ""
	}
	return a.Single
}

// Multi returns the values recorded for questionID as a list.
func (s *AnswerSet) Multi(questionID string) []string {
	a, ok := s.Get(questionID)
	if !ok {
		return nil
	}
	return a.Values()
}

// RemoveLast deletes the most recently inserted entry and returns its key.
func (s *AnswerSet) RemoveLast() (string, bool) {
	if s == nil || len(s.order) == 0 {
		return "", false
	}
	last := s.order[len(s.order)-1]
	s.order = s.order[:len(s.order)-1]
	delete(s.values, last)
	return last, true
}

// Keys returns question IDs in insertion order.
func (s *AnswerSet) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of answered questions.
func (s *AnswerSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Clone returns a deep copy.
func (s *AnswerSet) Clone() *AnswerSet {
	out := NewAnswerSet()
	if s == nil {
		return out
	}
	for _, k := range s.order {
		a := s.values[k]
		if a.IsMulti() {
			a = MultiAnswer(a.Multi)
		}
		out.Set(k, a)
	}
	return out
}

// MarshalJSON encodes the set as a flat object with keys in insertion order.
func (s *AnswerSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if s != nil {
		for i, k := range s.order {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(s.values[k])
			if err != nil {
				return nil, fmt.Errorf("encoding answer %q: %w", k, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat object, preserving key order.
func (s *AnswerSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding answers: %w", err)
	}
	if tok == nil {
		*s = AnswerSet{values: make(map[string]Answer)}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decoding answers: expected object")
	}

	out := AnswerSet{values: make(map[string]Answer)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding answer key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decoding answers: non-string key")
		}
		var a Answer
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("decoding answer %q: %w", key, err)
		}
		out.Set(key, a)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding answers: %w", err)
	}
	*s = out
	return nil
}
