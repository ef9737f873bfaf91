package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"pharma-backend/internal/apperrors"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, msg string, details string) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// Error maps an application error to its HTTP status and the
// {error, details?} body shape. Persistence causes are only attached
// outside production builds.
func Error(w http.ResponseWriter, err error) {
	var ve *apperrors.ValidationError
	var ae *apperrors.AuthError
	var nfe *apperrors.NotFoundError
	var pe *apperrors.PersistenceError

	switch {
	case errors.As(err, &ve):
		JSONError(w, http.StatusBadRequest, ve.Msg, "")
	case errors.As(err, &ae):
		JSONError(w, http.StatusUnauthorized, ae.Msg, "")
	case errors.As(err, &nfe):
		JSONError(w, http.StatusNotFound, nfe.Error(), "")
	case errors.As(err, &pe):
		JSONError(w, http.StatusInternalServerError, "internal server error", persistenceDetails(pe))
	default:
		JSONError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func persistenceDetails(pe *apperrors.PersistenceError) string {
	if os.Getenv("APP_ENV") == "production" {
		return ""
	}
	return pe.Error()
}

func StatusFor(err error) int {
	var ve *apperrors.ValidationError
	var ae *apperrors.AuthError
	var nfe *apperrors.NotFoundError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ae):
		return http.StatusUnauthorized
	case errors.As(err, &nfe):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
