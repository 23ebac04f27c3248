package domain

import "time"

// UserProfile is the persisted outcome of a completed survey.
type UserProfile struct {
	UserID      string     `json:"userId"`
	Email       string     `json:"email,omitempty"`
	Persona     Persona    `json:"persona"`
	Answers     *AnswerSet `json:"answers"`
	WorkType    string     `json:"workType"`
	Frequency   string     `json:"frequency"`
	TimeWasters []string   `json:"timeWasters"`
	Goal        string     `json:"goal"`
	OnboardedAt time.Time  `json:"onboardedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SurveyDraft is an in-progress survey, saved after every answer so a session
// can be resumed.
type SurveyDraft struct {
	UserID            string
	CurrentQuestionID string
	Answers           *AnswerSet
	UpdatedAt         time.Time

	// Pending is an unsubmitted multi-choice selection on the current question.
	Pending []string
}

// ActivityProgress records completion of a plan activity.
type ActivityProgress struct {
	UserID      string    `json:"userId"`
	PlanID      string    `json:"planId"`
	ActivityID  string    `json:"activityId"`
	CompletedAt time.Time `json:"completedAt"`
	Reflection  string    `json:"reflection,omitempty"`
}
