package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/workhub/workplace-backend/internal/apperrors"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// Error maps a service error onto the HTTP status taxonomy: validation and
// invalid-state failures are 400, missing entities 404, ownership 403,
// booking conflicts 409, everything else an opaque 500.
func Error(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err),
		errors.Is(err, apperrors.ErrItemUnavailable),
		errors.Is(err, apperrors.ErrInvalidTransition):
		JSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		JSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		JSON(w, http.StatusForbidden, errorBody{Error: "forbidden"})
	case errors.Is(err, apperrors.ErrBookingConflict):
		JSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		slog.Error("Unexpected error handling request", "error", err)
		JSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
