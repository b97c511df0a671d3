package admin

import (
	"log"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/Stuart1162/fizzyjuice/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger      *log.Logger
	jobs        adminapp.JobService
	reports     adminapp.ReportService
	users       adminapp.UserService
	analytics   adminapp.AnalyticsService
	archiveDays int
	now         func() time.Time
}

// Config provides dependencies for Handler.
type Config struct {
	Logger      *log.Logger
	Jobs        adminapp.JobService
	Reports     adminapp.ReportService
	Users       adminapp.UserService
	Analytics   adminapp.AnalyticsService
	ArchiveDays int
	Now         func() time.Time
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		logger:      cfg.Logger,
		jobs:        cfg.Jobs,
		reports:     cfg.Reports,
		users:       cfg.Users,
		analytics:   cfg.Analytics,
		archiveDays: cfg.ArchiveDays,
		now:         now,
	}
}

// Register mounts admin routes onto router. 権限チェックはアプリケーション層で行う。
func (h *Handler) Register(r chi.Router) {
	r.Get("/jobs", h.jobListHandler(""))
	r.Get("/jobs/drafts", h.jobListHandler("drafts"))
	r.Get("/jobs/archived", h.jobListHandler("archived"))
	r.Post("/jobs/{id}/approve", h.approveHandler())
	r.Post("/jobs/{id}/restore", h.restoreHandler())
	r.Delete("/jobs/{id}", h.jobDeleteHandler())

	r.Get("/reports", h.reportHandler())

	r.Get("/users", h.userListHandler())
	r.Delete("/users/{uid}", h.userDeleteHandler())

	r.Get("/analytics/strengths", h.strengthsHandler())
}
