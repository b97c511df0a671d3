package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	admindomain "github.com/Stuart1162/fizzyjuice/internal/admin/domain"
	"github.com/Stuart1162/fizzyjuice/internal/interfaces/http/common"
)

func (h *Handler) reportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		reports, err := h.reports.ActiveJobs(ctx, common.SessionFromContext(ctx))
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to build report")
			return
		}

		now := h.now()
		items := make([]jobReportResponse, 0, len(reports))
		for _, report := range reports {
			items = append(items, jobReportResponse{
				Job: adminJobDomainToResponse(report.Job, now, h.archiveDays),
				Metrics: metricsResponse{
					Views:   report.Metrics.Views,
					Saves:   report.Metrics.Saves,
					Applies: report.Metrics.Applies,
				},
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) userListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		filter, err := admindomain.NewRoleFilter(r.URL.Query().Get("role"))
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: err.Error()})
			return
		}

		listing, err := h.users.List(ctx, common.SessionFromContext(ctx), filter)
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to load users")
			return
		}

		items := make([]userResponse, 0, len(listing.Users))
		for _, user := range listing.Users {
			items = append(items, userOverviewToResponse(user))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, userListResponse{
			Items: items,
			Counts: roleCountsResponse{
				Jobseekers: listing.Counts.Jobseekers,
				Employers:  listing.Counts.Employers,
				Admins:     listing.Counts.Admins,
				Total:      listing.Counts.Total,
			},
			Role: listing.Filter.String(),
		})
	}
}

func (h *Handler) userDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		uid := strings.TrimSpace(chi.URLParam(r, "uid"))
		if err := h.users.Delete(ctx, common.SessionFromContext(ctx), uid); err != nil {
			common.WriteError(h.logger, w, err, "failed to delete user")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) strengthsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		stats, err := h.analytics.Strengths(ctx, common.SessionFromContext(ctx))
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to load strength analytics")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, stats)
	}
}
