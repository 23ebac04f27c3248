package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/repository"
	"github.com/alexanderramin/aionboard/internal/survey"
)

type surveyService struct {
	graph    survey.Graph
	drafts   repository.DraftRepo
	observer UseCaseObserver
}

func NewSurveyService(graph survey.Graph, drafts repository.DraftRepo, observers ...UseCaseObserver) SurveyService {
	return &surveyService{graph: graph, drafts: drafts, observer: useCaseObserverOrNoop(observers)}
}

// Begin resumes the user's draft, or starts a fresh survey when none exists.
func (s *surveyService) Begin(ctx context.Context, userID string) (state *SurveyState, err error) {
	defer observe(ctx, s.observer, "survey-begin", time.Now(), map[string]any{"user_id": userID}, &err)

	sess, err := s.load(ctx, userID)
	if err == nil {
		return stateOf(sess), nil
	}
	if !errors.Is(err, ErrNoSurvey) {
		return nil, err
	}
	sess = survey.NewSession(s.graph)
	if err := s.save(ctx, userID, sess); err != nil {
		return nil, err
	}
	return stateOf(sess), nil
}

func (s *surveyService) Restart(ctx context.Context, userID string) (state *SurveyState, err error) {
	defer observe(ctx, s.observer, "survey-restart", time.Now(), map[string]any{"user_id": userID}, &err)

	sess := survey.NewSession(s.graph)
	if err := s.save(ctx, userID, sess); err != nil {
		return nil, err
	}
	return stateOf(sess), nil
}

func (s *surveyService) Current(ctx context.Context, userID string) (*SurveyState, error) {
	sess, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stateOf(sess), nil
}

func (s *surveyService) Start(ctx context.Context, userID string) (*SurveyState, error) {
	return s.apply(ctx, userID, "survey-start", nil, func(sess *survey.Session) error {
		return sess.Start()
	})
}

func (s *surveyService) Answer(ctx context.Context, userID, optionID string) (*SurveyState, error) {
	return s.apply(ctx, userID, "survey-answer", map[string]any{"option": optionID}, func(sess *survey.Session) error {
		return sess.Select(optionID)
	})
}

func (s *surveyService) Toggle(ctx context.Context, userID, optionID string) (*SurveyState, error) {
	return s.apply(ctx, userID, "survey-toggle", map[string]any{"option": optionID}, func(sess *survey.Session) error {
		return sess.Toggle(optionID)
	})
}

func (s *surveyService) Continue(ctx context.Context, userID string) (*SurveyState, error) {
	return s.apply(ctx, userID, "survey-continue", nil, func(sess *survey.Session) error {
		return sess.Continue()
	})
}

func (s *surveyService) Back(ctx context.Context, userID string) (*SurveyState, error) {
	return s.apply(ctx, userID, "survey-back", nil, func(sess *survey.Session) error {
		return sess.Previous()
	})
}

// apply loads the draft, runs one session action, and saves the result. A
// failed action leaves the stored draft untouched.
func (s *surveyService) apply(ctx context.Context, userID, name string, fields map[string]any, action func(*survey.Session) error) (state *SurveyState, err error) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["user_id"] = userID
	defer observe(ctx, s.observer, name, time.Now(), fields, &err)

	sess, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	fields["question"] = sess.CurrentID()
	if err = action(sess); err != nil {
		return nil, err
	}
	if err = s.save(ctx, userID, sess); err != nil {
		return nil, err
	}
	return stateOf(sess), nil
}

func (s *surveyService) load(ctx context.Context, userID string) (*survey.Session, error) {
	draft, err := s.drafts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", userID, ErrNoSurvey)
		}
		return nil, fmt.Errorf("loading survey draft: %w", err)
	}
	sess, err := survey.Restore(s.graph, draft.CurrentQuestionID, draft.Answers)
	if err != nil {
		return nil, fmt.Errorf("restoring survey draft: %w", err)
	}
	// The saved selection is authoritative, including an emptied one.
	if q := sess.Current(); q != nil && q.Type == domain.QuestionMultiChoice {
		if err := sess.ResumePending(draft.Pending); err != nil {
			return nil, fmt.Errorf("restoring survey selection: %w", err)
		}
	}
	return sess, nil
}

func (s *surveyService) save(ctx context.Context, userID string, sess *survey.Session) error {
	draft := &domain.SurveyDraft{
		UserID:            userID,
		CurrentQuestionID: sess.CurrentID(),
		Answers:           sess.Answers(),
		Pending:           sess.Pending(),
		UpdatedAt:         time.Now().UTC(),
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return fmt.Errorf("saving survey draft: %w", err)
	}
	return nil
}

func stateOf(sess *survey.Session) *SurveyState {
	st := &SurveyState{
		Question:    sess.Current(),
		Answers:     sess.Answers(),
		Pending:     sess.Pending(),
		CanContinue: sess.CanContinue(),
		Done:        sess.Done(),
	}
	if st.Done {
		st.Persona = survey.CalculatePersona(st.Answers)
	}
	return st
}
