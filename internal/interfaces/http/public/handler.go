package public

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Stuart1162/fizzyjuice/internal/interfaces/http/common"
	publicapp "github.com/Stuart1162/fizzyjuice/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger      *log.Logger
	jobQueries  publicapp.JobQueryService
	jobCommands publicapp.JobCommandService
	savedJobs   publicapp.SavedJobService
	metrics     publicapp.MetricsService
	profiles    publicapp.ProfileService
	posting     publicapp.PostingService
	limiter     *common.IPRateLimiter
	archiveDays int
	now         func() time.Time
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger      *log.Logger
	JobQueries  publicapp.JobQueryService
	JobCommands publicapp.JobCommandService
	SavedJobs   publicapp.SavedJobService
	Metrics     publicapp.MetricsService
	Profiles    publicapp.ProfileService
	Posting     publicapp.PostingService
	// Limiter throttles anonymous write endpoints (view/apply counters, checkout). Optional.
	Limiter     *common.IPRateLimiter
	ArchiveDays int
	Now         func() time.Time
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		logger:      cfg.Logger,
		jobQueries:  cfg.JobQueries,
		jobCommands: cfg.JobCommands,
		savedJobs:   cfg.SavedJobs,
		metrics:     cfg.Metrics,
		profiles:    cfg.Profiles,
		posting:     cfg.Posting,
		limiter:     cfg.Limiter,
		archiveDays: cfg.ArchiveDays,
		now:         now,
	}
}

func (h *Handler) throttled(next http.HandlerFunc) http.Handler {
	if h.limiter == nil {
		return next
	}
	return h.limiter.Middleware(next)
}

// Register mounts all public routes onto the router.
// セッションは上流の認証ミドルウェアが詰める。requireAuth は未ログインを 401 で弾く。
func (h *Handler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/taxonomy", h.taxonomyHandler())

	r.Get("/jobs", h.jobListHandler())
	r.Get("/jobs/ref/{ref}", h.jobByRefHandler())
	r.Get("/jobs/{id}", h.jobDetailHandler())
	r.Method(http.MethodPost, "/jobs/{id}/view", h.throttled(h.jobMetricHandler(metricView)))
	r.Method(http.MethodPost, "/jobs/{id}/apply", h.throttled(h.jobMetricHandler(metricApply)))
	r.Method(http.MethodPost, "/v1/checkout/sessions", h.throttled(h.checkoutSessionHandler()))

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/jobs", h.jobCreateHandler())
		r.Patch("/jobs/{id}", h.jobEditHandler())
		r.Delete("/jobs/{id}", h.jobDeleteHandler())

		r.Post("/jobs/checkout", h.paidPostStartHandler())
		r.Post("/jobs/checkout/{sessionId}/complete", h.paidPostCompleteHandler())
		r.Post("/jobs/checkout/{sessionId}/cancel", h.paidPostCancelHandler())

		r.Get("/me", h.sessionHandler())
		r.Get("/me/jobs", h.personalizedHandler())
		r.Get("/me/posted-jobs", h.postedJobsHandler())
		r.Get("/me/saved-jobs", h.savedListHandler())
		r.Put("/me/saved-jobs/{jobId}", h.saveHandler())
		r.Delete("/me/saved-jobs/{jobId}", h.unsaveHandler())
		r.Post("/me/saved-jobs/{jobId}/toggle", h.toggleSavedHandler())
		r.Put("/me/saved-jobs/{jobId}/applied", h.appliedHandler())
		r.Get("/me/profile", h.profileHandler())
		r.Put("/me/profile", h.profileUpdateHandler())
		r.Get("/me/preferences", h.preferencesHandler())
		r.Put("/me/preferences", h.preferencesUpdateHandler())
	})
}
