package service

import "errors"

var (
	// ErrNoPlan means the user has not completed onboarding yet.
	ErrNoPlan = errors.New("no plan yet, complete the survey first")
	// ErrNotOnboarded means no profile exists for the user.
	ErrNotOnboarded = errors.New("user has not completed onboarding")
	// ErrNoSurvey means there is no survey in progress for the user.
	ErrNoSurvey = errors.New("no survey in progress")
	// ErrActivityNotInPlan is returned when progress targets an activity the
	// current plan does not contain.
	ErrActivityNotInPlan = errors.New("activity is not part of the current plan")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
