package rooms

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/service/models/room"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	SearchRooms(ctx context.Context, filter room.QueryRoomsModel) ([]room.Room, error)
	GetRoom(ctx context.Context, id int64) (*room.Room, error)
	CreateRoom(ctx context.Context, r room.Room) (*room.Room, error)
	UpdateRoom(ctx context.Context, r room.Room) (*room.Room, error)
	DeactivateRoom(ctx context.Context, id int64) error
}

// Search lists rooms filtered by capacity, features and, when "from" and
// "to" are given as RFC 3339 timestamps, availability in that window.
func Search(w http.ResponseWriter, r *http.Request, svc service) {
	query := r.URL.Query()
	filter := room.QueryRoomsModel{ActiveOnly: true}
	if c, err := strconv.Atoi(query.Get("minCapacity")); err == nil {
		filter.MinCapacity = c
	}
	if f := query.Get("features"); f != "" {
		filter.Features = strings.Split(f, ",")
	}
	if from := query.Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			respond.Error(w, apperrors.NewValidation("from", "must be an RFC 3339 timestamp"))

			return
		}
		filter.FreeFrom = t
	}
	if to := query.Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			respond.Error(w, apperrors.NewValidation("to", "must be an RFC 3339 timestamp"))

			return
		}
		filter.FreeTo = t
	}

	result, err := svc.SearchRooms(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, result)
}

// Get returns one room.
func Get(w http.ResponseWriter, r *http.Request, svc service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperrors.NewValidation("id", "must be an integer"))

		return
	}

	rm, err := svc.GetRoom(r.Context(), id)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, rm)
}

// Create adds a room.
func Create(w http.ResponseWriter, r *http.Request, svc service) {
	var rm room.Room
	if err := json.NewDecoder(r.Body).Decode(&rm); err != nil {
		respond.Error(w, apperrors.NewValidation("body", "failed to decode request body"))

		return
	}

	created, err := svc.CreateRoom(r.Context(), rm)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// Update rewrites a room.
func Update(w http.ResponseWriter, r *http.Request, svc service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperrors.NewValidation("id", "must be an integer"))

		return
	}

	var rm room.Room
	if err := json.NewDecoder(r.Body).Decode(&rm); err != nil {
		respond.Error(w, apperrors.NewValidation("body", "failed to decode request body"))

		return
	}
	rm.ID = id

	updated, err := svc.UpdateRoom(r.Context(), rm)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// Delete deactivates a room.
func Delete(w http.ResponseWriter, r *http.Request, svc service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperrors.NewValidation("id", "must be an integer"))

		return
	}

	if err := svc.DeactivateRoom(r.Context(), id); err != nil {
		respond.Error(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
