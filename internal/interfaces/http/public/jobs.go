package public

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Stuart1162/fizzyjuice/internal/interfaces/http/common"
	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

func (h *Handler) jobListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		query := r.URL.Query()
		filter := domain.Filter{
			Query:         query.Get("q"),
			Location:      query.Get("location"),
			Roles:         common.QueryList(query, "roles"),
			ContractTypes: common.QueryList(query, "contractTypes"),
			Shifts:        common.QueryList(query, "shifts"),
		}
		page := common.ParsePage(query)

		jobs, err := h.jobQueries.List(ctx, common.SessionFromContext(ctx), filter)
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to load jobs")
			return
		}

		start, end := page.Bounds(len(jobs))
		common.WriteJSON(h.logger, w, http.StatusOK, jobListResponse{
			Items: h.jobResponses(jobs[start:end]),
			Page:  page.Page,
			Limit: page.Limit,
			Total: len(jobs),
		})
	}
}

func (h *Handler) jobDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := trimParam(chi.URLParam(r, "id"))
		job, err := h.jobQueries.Detail(ctx, common.SessionFromContext(ctx), id)
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to load job")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildJobResponse(*job, h.now(), h.archiveDays))
	}
}

func (h *Handler) jobByRefHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		ref := trimParam(chi.URLParam(r, "ref"))
		job, err := h.jobQueries.DetailByRef(ctx, common.SessionFromContext(ctx), ref)
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to load job")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildJobResponse(*job, h.now(), h.archiveDays))
	}
}

func (h *Handler) jobCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req jobRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, err, "invalid request")
			return
		}

		job, err := h.jobCommands.Create(ctx, common.SessionFromContext(ctx), req.toDomain())
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to create job")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildJobResponse(*job, h.now(), h.archiveDays))
	}
}

func (h *Handler) jobEditHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req jobRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, err, "invalid request")
			return
		}

		id := trimParam(chi.URLParam(r, "id"))
		job, err := h.jobCommands.Edit(ctx, common.SessionFromContext(ctx), id, req.toDomain())
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to update job")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildJobResponse(*job, h.now(), h.archiveDays))
	}
}

func (h *Handler) jobDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := trimParam(chi.URLParam(r, "id"))
		if err := h.jobCommands.Delete(ctx, common.SessionFromContext(ctx), id); err != nil {
			common.WriteError(h.logger, w, err, "failed to delete job")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type metricAction int

const (
	metricView metricAction = iota
	metricApply
)

// jobMetricHandler は常に 202 を返す。計測の失敗は利用者に見せない。
func (h *Handler) jobMetricHandler(action metricAction) http.HandlerFunc {
	kind := domain.MetricViews
	if action == metricApply {
		kind = domain.MetricApplies
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := trimParam(chi.URLParam(r, "id"))
		if err := h.metrics.Record(ctx, common.SessionFromContext(ctx), id, kind); err != nil && !errors.Is(err, domain.ErrNotFound) && h.logger != nil {
			h.logger.Printf("metric %s failed job=%q: %v", kind, id, err)
		}
		common.WriteJSON(h.logger, w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

func (h *Handler) personalizedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		ranked, err := h.jobQueries.Personalized(ctx, common.SessionFromContext(ctx))
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to load your list")
			return
		}
		now := h.now()
		items := make([]rankedJobResponse, 0, len(ranked))
		for _, rj := range ranked {
			items = append(items, rankedJobResponse{
				Job:        buildJobResponse(rj.Job, now, h.archiveDays),
				MatchCount: rj.MatchCount,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) postedJobsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		jobs, err := h.jobQueries.Mine(ctx, common.SessionFromContext(ctx))
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to load your jobs")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": h.jobResponses(jobs)})
	}
}
