package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/aionboard/internal/catalog"
	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/planner"
	"github.com/alexanderramin/aionboard/internal/service"
	"github.com/alexanderramin/aionboard/internal/survey"
)

// Handler serves the JSON API on top of the service layer.
type Handler struct {
	catalog    *catalog.Catalog
	surveys    service.SurveyService
	onboarding service.OnboardingService
	plans      service.PlanService
	progress   service.ProgressService
	now        func() time.Time
}

func NewHandler(
	cat *catalog.Catalog,
	surveys service.SurveyService,
	onboarding service.OnboardingService,
	plans service.PlanService,
	progress service.ProgressService,
) *Handler {
	return &Handler{
		catalog:    cat,
		surveys:    surveys,
		onboarding: onboarding,
		plans:      plans,
		progress:   progress,
		now:        time.Now,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handler) Questions(c *gin.Context) {
	RespondOK(c, gin.H{"questions": h.catalog.Questions})
}

type answersRequest struct {
	Answers *domain.AnswerSet `json:"answers"`
}

func (h *Handler) Persona(c *gin.Context) {
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Answers == nil {
		req.Answers = domain.NewAnswerSet()
	}
	p := survey.CalculatePersona(req.Answers)
	RespondOK(c, gin.H{"persona": p, "profile": domain.ProfileFor(p)})
}

func (h *Handler) PreviewPlan(c *gin.Context) {
	var in planner.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	plan, err := h.plans.Preview(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"plan": plan})
}

func (h *Handler) SurveySession(c *gin.Context) {
	h.surveyAction(c, func(userID string) (*service.SurveyState, error) {
		return h.surveys.Begin(c.Request.Context(), userID)
	})
}

func (h *Handler) SurveyRestart(c *gin.Context) {
	h.surveyAction(c, func(userID string) (*service.SurveyState, error) {
		return h.surveys.Restart(c.Request.Context(), userID)
	})
}

func (h *Handler) SurveyStart(c *gin.Context) {
	h.surveyAction(c, func(userID string) (*service.SurveyState, error) {
		return h.surveys.Start(c.Request.Context(), userID)
	})
}

type optionRequest struct {
	OptionID string `json:"optionId" binding:"required"`
}

func (h *Handler) SurveyAnswer(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.surveyAction(c, func(userID string) (*service.SurveyState, error) {
		return h.surveys.Answer(c.Request.Context(), userID, req.OptionID)
	})
}

func (h *Handler) SurveyToggle(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	h.surveyAction(c, func(userID string) (*service.SurveyState, error) {
		return h.surveys.Toggle(c.Request.Context(), userID, req.OptionID)
	})
}

func (h *Handler) SurveyContinue(c *gin.Context) {
	h.surveyAction(c, func(userID string) (*service.SurveyState, error) {
		return h.surveys.Continue(c.Request.Context(), userID)
	})
}

func (h *Handler) SurveyBack(c *gin.Context) {
	h.surveyAction(c, func(userID string) (*service.SurveyState, error) {
		return h.surveys.Back(c.Request.Context(), userID)
	})
}

func (h *Handler) surveyAction(c *gin.Context, fn func(userID string) (*service.SurveyState, error)) {
	st, err := fn(c.GetString(ctxUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, st)
}

type onboardingRequest struct {
	Answers   *domain.AnswerSet `json:"answers"`
	Email     string            `json:"email"`
	StartDate string            `json:"startDate"`
}

// CompleteOnboarding finishes onboarding from posted answers, or from the
// caller's survey draft when none are posted.
func (h *Handler) CompleteOnboarding(c *gin.Context) {
	var req onboardingRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID := c.GetString(ctxUserID)
	email := req.Email
	if email == "" {
		email = c.GetString(ctxEmail)
	}

	var res *service.OnboardingResult
	if req.Answers != nil {
		res, err = h.onboarding.Complete(c.Request.Context(), service.OnboardingRequest{
			UserID:    userID,
			Email:     email,
			Answers:   req.Answers,
			StartDate: start,
		})
	} else {
		res, err = h.onboarding.CompleteDraft(c.Request.Context(), userID, email, start)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"profile": res.Profile,
		"persona": res.PersonaProfile,
		"plan":    res.Plan,
	})
}

func (h *Handler) Profile(c *gin.Context) {
	p, err := h.onboarding.Profile(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": p, "persona": domain.ProfileFor(p.Persona)})
}

func (h *Handler) CurrentPlan(c *gin.Context) {
	rec, err := h.plans.Current(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, rec)
}

func (h *Handler) PlanHistory(c *gin.Context) {
	recs, err := h.plans.History(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"plans": recs})
}

type regenerateRequest struct {
	StartDate string `json:"startDate"`
}

func (h *Handler) RegeneratePlan(c *gin.Context) {
	var req regenerateRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rec, err := h.plans.Regenerate(c.Request.Context(), c.GetString(ctxUserID), start)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Calendar accepts ?month=YYYY-MM or ?from=&to= dates. Without either it
// covers the 30 days from today.
func (h *Handler) Calendar(c *gin.Context) {
	from, to, err := h.calendarRange(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	items, err := h.plans.Calendar(c.Request.Context(), c.GetString(ctxUserID), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"from":       from.Format(time.DateOnly),
		"to":         to.Format(time.DateOnly),
		"activities": items,
	})
}

func (h *Handler) calendarRange(c *gin.Context) (time.Time, time.Time, error) {
	if m := c.Query("month"); m != "" {
		from, err := time.Parse("2006-01", m)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("month must be YYYY-MM: %w", err)
		}
		return from, from.AddDate(0, 1, 0), nil
	}
	from := planner.StartOfDay(h.now().UTC())
	to := from.AddDate(0, 0, domain.PhaseDays)
	var err error
	if q := c.Query("from"); q != "" {
		if from, err = time.Parse(time.DateOnly, q); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from must be YYYY-MM-DD: %w", err)
		}
		to = from.AddDate(0, 0, domain.PhaseDays)
	}
	if q := c.Query("to"); q != "" {
		if to, err = time.Parse(time.DateOnly, q); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to must be YYYY-MM-DD: %w", err)
		}
	}
	return from, to, nil
}

type progressRequest struct {
	Reflection string `json:"reflection"`
}

func (h *Handler) CompleteActivity(c *gin.Context) {
	var req progressRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	activityID := c.Param("activityId")
	if err := h.progress.Complete(c.Request.Context(), c.GetString(ctxUserID), activityID, req.Reflection); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"activityId": activityID, "completed": true})
}

func (h *Handler) UndoActivity(c *gin.Context) {
	if err := h.progress.Undo(c.Request.Context(), c.GetString(ctxUserID), c.Param("activityId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.progress.Dashboard(c.Request.Context(), c.GetString(ctxUserID), h.now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, d)
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("startDate must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}

// bindOptionalJSON binds the request body into dst. An empty body, including
// a chunked one with no data, leaves dst at its zero value.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
