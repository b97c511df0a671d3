package public

import (
	"net/http"

	"github.com/Stuart1162/fizzyjuice/internal/interfaces/http/common"
)

type sessionResponse struct {
	UserID      string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Role        string `json:"role"`
	Superadmin  bool   `json:"superadmin"`
	IsAdmin     bool   `json:"isAdmin"`
}

// sessionHandler は検証済みトークンから組み立てたセッションをそのまま返す。
func (h *Handler) sessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := common.SessionFromContext(r.Context())
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"status": "ok",
			"session": sessionResponse{
				UserID:      session.UserID,
				Email:       session.Email,
				DisplayName: session.DisplayName,
				Role:        string(session.Role),
				Superadmin:  session.Superadmin,
				IsAdmin:     session.IsAdmin(),
			},
		})
	}
}

func (h *Handler) taxonomyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, common.CurrentTaxonomy())
	}
}
