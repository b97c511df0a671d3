package public

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Stuart1162/fizzyjuice/internal/interfaces/http/common"
	publicapp "github.com/Stuart1162/fizzyjuice/internal/public/application"
)

// checkoutSessionHandler serves POST /v1/checkout/sessions.
func (h *Handler) checkoutSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req checkoutRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, err, "invalid request")
			return
		}

		session, err := h.posting.CreateCheckout(ctx, common.SessionFromContext(ctx), req.toCommand())
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to create checkout session")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, checkoutResponse{URL: session.URL, ID: session.ID})
	}
}

// paidPostStartHandler は求人を検証して保留し、決済ページの URL を返す。
func (h *Handler) paidPostStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req paidPostRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, err, "invalid request")
			return
		}

		cmd := publicapp.CheckoutCommand{SuccessURL: req.SuccessURL, CancelURL: req.CancelURL}
		session, err := h.posting.StartPaidPost(ctx, common.SessionFromContext(ctx), req.Job.toDomain(), cmd)
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to start checkout")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, checkoutResponse{URL: session.URL, ID: session.ID})
	}
}

func (h *Handler) paidPostCompleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		sessionID := trimParam(chi.URLParam(r, "sessionId"))
		job, err := h.posting.CompletePaidPost(ctx, common.SessionFromContext(ctx), sessionID)
		if err != nil {
			common.WriteError(h.logger, w, err, "failed to publish paid job")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, paidPostCompleteResponse{
			Status: "created",
			Job:    buildJobResponse(*job, h.now(), h.archiveDays),
		})
	}
}

func (h *Handler) paidPostCancelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		sessionID := trimParam(chi.URLParam(r, "sessionId"))
		if err := h.posting.CancelPaidPost(ctx, common.SessionFromContext(ctx), sessionID); err != nil {
			common.WriteError(h.logger, w, err, "failed to cancel checkout")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
