package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/aionboard/internal/repository"
	"github.com/alexanderramin/aionboard/internal/service"
	"github.com/alexanderramin/aionboard/internal/survey"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

var errInternal = errors.New("internal error")

// respondServiceError maps domain and service sentinels to HTTP statuses.
// Unrecognised errors are logged by the request logger and hidden from the
// client.
func respondServiceError(c *gin.Context, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		RespondError(c, status, code, errInternal)
		return
	}
	RespondError(c, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, survey.ErrUnknownOption):
		return http.StatusBadRequest, "unknown_option"
	case errors.Is(err, survey.ErrEmptySelection):
		return http.StatusBadRequest, "empty_selection"
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, survey.ErrWrongQuestionType):
		return http.StatusConflict, "wrong_question_type"
	case errors.Is(err, survey.ErrNotComplete):
		return http.StatusConflict, "survey_incomplete"
	case errors.Is(err, service.ErrNoSurvey):
		return http.StatusNotFound, "no_survey"
	case errors.Is(err, service.ErrNoPlan):
		return http.StatusNotFound, "no_plan"
	case errors.Is(err, service.ErrNotOnboarded):
		return http.StatusNotFound, "not_onboarded"
	case errors.Is(err, service.ErrActivityNotInPlan):
		return http.StatusNotFound, "activity_not_in_plan"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
