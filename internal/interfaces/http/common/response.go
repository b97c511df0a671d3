package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	publicapp "github.com/Stuart1162/fizzyjuice/internal/public/application"
	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error  string `json:"error"`
	SignIn bool   `json:"signIn,omitempty"`
}

// StatusOf maps domain sentinels to HTTP statuses.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPaymentRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as {error}. 5xx details stay in the log; the client gets fallback.
func WriteError(logger *log.Logger, w http.ResponseWriter, err error, fallback string) {
	status := StatusOf(err)
	body := ErrorResponse{}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		body.Error = verr.Message
	case status == http.StatusUnauthorized:
		body.Error = "sign in to continue"
		body.SignIn = true
	case status == http.StatusPaymentRequired:
		body.Error = "payment required"
	case status == http.StatusForbidden:
		body.Error = "you do not have permission to do that"
	case status == http.StatusNotFound:
		body.Error = "not found"
	case status == http.StatusConflict:
		body.Error = "that change is not allowed in the current state"
	case errors.Is(err, publicapp.ErrCheckoutUnavailable):
		body.Error = "checkout is not configured"
	default:
		body.Error = fallback
	}
	if status >= http.StatusInternalServerError && logger != nil {
		logger.Printf("%s: %v", fallback, err)
	}
	WriteJSON(logger, w, status, body)
}
