package favorites

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/service/models/favorite"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/transport/http/middleware/auth"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	List(ctx context.Context, actor identity.Actor) ([]favorite.Favorite, error)
	Create(ctx context.Context, actor identity.Actor, f favorite.Favorite) (*favorite.Favorite, error)
	Update(ctx context.Context, actor identity.Actor, f favorite.Favorite) (*favorite.Favorite, error)
	Delete(ctx context.Context, actor identity.Actor, id int64) error
}

// List returns the caller's favorite attendee lists.
func List(w http.ResponseWriter, r *http.Request, svc service) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)

		return
	}

	result, err := svc.List(r.Context(), actor)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, result)
}

// Create saves a new favorite attendee list.
func Create(w http.ResponseWriter, r *http.Request, svc service) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)

		return
	}

	var f favorite.Favorite
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respond.Error(w, apperrors.NewValidation("body", "failed to decode request body"))

		return
	}

	created, err := svc.Create(r.Context(), actor, f)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// Update rewrites a favorite attendee list.
func Update(w http.ResponseWriter, r *http.Request, svc service) {
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

	var f favorite.Favorite
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respond.Error(w, apperrors.NewValidation("body", "failed to decode request body"))

		return
	}
	f.ID = id

	updated, err := svc.Update(r.Context(), actor, f)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// Delete removes a favorite attendee list.
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

	if err := svc.Delete(r.Context(), actor, id); err != nil {
		respond.Error(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
