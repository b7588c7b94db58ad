package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/service/models/booking"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/transport/http/middleware/auth"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	Book(ctx context.Context, actor identity.Actor, b booking.Booking) (*booking.Booking, error)
	ListBookings(ctx context.Context, actor identity.Actor) ([]booking.Booking, error)
	Cancel(ctx context.Context, actor identity.Actor, id int64) error
}

// Create reserves a room.
func Create(w http.ResponseWriter, r *http.Request, svc service) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)

		return
	}

	var b booking.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respond.Error(w, apperrors.NewValidation("body", "failed to decode request body"))

		return
	}

	created, err := svc.Book(r.Context(), actor, b)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// List returns the caller's bookings.
func List(w http.ResponseWriter, r *http.Request, svc service) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)

		return
	}

	result, err := svc.ListBookings(r.Context(), actor)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, result)
}

// Delete cancels a booking.
func Delete(w http.ResponseWriter, r *http.Request, svc service) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)

		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperrors.NewValidation("id", "must be an integer"))

		return
	}

	if err := svc.Cancel(r.Context(), actor, id); err != nil {
		respond.Error(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
