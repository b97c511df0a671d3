package public

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Stuart1162/fizzyjuice/internal/interfaces/http/common"
)

// ── Saved jobs ─────────────────────────────────────────────────────────────

func (h *Handler) savedListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		saved, err := h.savedJobs.List(ctx, common.SessionFromContext(ctx))
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to load saved jobs")
			return
		}
		items := make([]savedJobResponse, 0, len(saved))
		for _, s := range saved {
			items = append(items, buildSavedJobResponse(s))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) saveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		saved, err := h.savedJobs.Save(ctx, common.SessionFromContext(ctx), trimParam(chi.URLParam(r, "jobId")))
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to save job")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildSavedJobResponse(*saved))
	}
}

func (h *Handler) unsaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		if err := h.savedJobs.Unsave(ctx, common.SessionFromContext(ctx), trimParam(chi.URLParam(r, "jobId"))); err != nil {
			common.WriteError(h.logger, w, err, "failed to remove saved job")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) toggleSavedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		jobID := trimParam(chi.URLParam(r, "jobId"))
		saved, err := h.savedJobs.Toggle(ctx, common.SessionFromContext(ctx), jobID)
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to update saved job")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"jobId": jobID, "saved": saved})
	}
}

func (h *Handler) appliedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req appliedRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, err, "invalid request")
			return
		}
		saved, err := h.savedJobs.SetApplied(ctx, common.SessionFromContext(ctx), trimParam(chi.URLParam(r, "jobId")), *req.Applied)
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to update applied status")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildSavedJobResponse(*saved))
	}
}

// ── Profile & preferences ──────────────────────────────────────────────────

func (h *Handler) profileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		profile, err := h.profiles.Profile(ctx, common.SessionFromContext(ctx))
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to load profile")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildProfileResponse(*profile))
	}
}

func (h *Handler) profileUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req profileRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, err, "invalid request")
			return
		}
		profile, err := h.profiles.UpdateProfile(ctx, common.SessionFromContext(ctx), req.toCommand())
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to save profile")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildProfileResponse(*profile))
	}
}

func (h *Handler) preferencesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		prefs, err := h.profiles.Preferences(ctx, common.SessionFromContext(ctx))
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to load preferences")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildPreferencesPayload(*prefs))
	}
}

func (h *Handler) preferencesUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req preferencesPayload
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, err, "invalid request")
			return
		}
		prefs, err := h.profiles.SavePreferences(ctx, common.SessionFromContext(ctx), req.toDomain())
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to save preferences")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildPreferencesPayload(*prefs))
	}
}
