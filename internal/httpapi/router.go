package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/aionboard/internal/auth"
	"github.com/alexanderramin/aionboard/internal/logger"
	"github.com/alexanderramin/aionboard/internal/observability"
)

type RouterConfig struct {
	Handler     *Handler
	Tokens      *auth.TokenManager
	Log         *logger.Logger
	Metrics     *observability.Metrics
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Log))
	r.Use(Metrics(cfg.Metrics))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(CORS(cfg.CORSOrigins))
	}

	h := cfg.Handler
	r.GET("/healthcheck", h.HealthCheck)
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		api.GET("/survey/questions", h.Questions)
		api.POST("/persona", h.Persona)
		api.POST("/plan/preview", h.PreviewPlan)
	}

	protected := api.Group("/")
	protected.Use(RequireAuth(cfg.Tokens))
	{
		// Survey
		protected.GET("/survey/session", h.SurveySession)
		protected.POST("/survey/session/restart", h.SurveyRestart)
		protected.POST("/survey/session/start", h.SurveyStart)
		protected.POST("/survey/session/answer", h.SurveyAnswer)
		protected.POST("/survey/session/toggle", h.SurveyToggle)
		protected.POST("/survey/session/continue", h.SurveyContinue)
		protected.POST("/survey/session/back", h.SurveyBack)

		// Onboarding
		protected.POST("/onboarding/complete", h.CompleteOnboarding)
		protected.GET("/profile", h.Profile)

		// Plan
		protected.GET("/plan", h.CurrentPlan)
		protected.GET("/plans", h.PlanHistory)
		protected.POST("/plan/regenerate", h.RegeneratePlan)
		protected.GET("/plan/calendar", h.Calendar)

		// Progress
		protected.POST("/progress/:activityId", h.CompleteActivity)
		protected.DELETE("/progress/:activityId", h.UndoActivity)
		protected.GET("/dashboard", h.Dashboard)
	}
	return r
}
