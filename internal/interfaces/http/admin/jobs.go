package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	admindomain "github.com/Stuart1162/fizzyjuice/internal/admin/domain"
	"github.com/Stuart1162/fizzyjuice/internal/interfaces/http/common"
)

// jobListHandler serves the drafts/archived tabs. A fixed view wins over ?view=.
func (h *Handler) jobListHandler(fixed string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		raw := fixed
		if raw == "" {
			raw = r.URL.Query().Get("view")
		}
		view, err := admindomain.NewJobView(raw)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: err.Error()})
			return
		}

		jobs, err := h.jobs.List(ctx, common.SessionFromContext(ctx), view)
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to load jobs")
			return
		}

		now := h.now()
		items := make([]adminJobResponse, 0, len(jobs))
		for _, job := range jobs {
			items = append(items, adminJobDomainToResponse(job, now, h.archiveDays))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminJobListResponse{
			Items: items,
			View:  string(view),
			Total: len(items),
		})
	}
}

func (h *Handler) approveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		job, err := h.jobs.Approve(ctx, common.SessionFromContext(ctx), id)
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to approve job")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminJobDomainToResponse(*job, h.now(), h.archiveDays))
	}
}

func (h *Handler) restoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		job, err := h.jobs.Restore(ctx, common.SessionFromContext(ctx), id)
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to restore job")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminJobDomainToResponse(*job, h.now(), h.archiveDays))
	}
}

func (h *Handler) jobDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if err := h.jobs.Delete(ctx, common.SessionFromContext(ctx), id); err != nil {
			common.WriteError(h.logger, w, err, "failed to delete job")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
