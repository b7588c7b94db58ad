package menu

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/models/menuitem"
	"github.com/workhub/workplace-backend/internal/transport/http/middleware/auth"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	List(ctx context.Context, includeInactive bool) ([]menuitem.MenuItem, error)
	Get(ctx context.Context, id int64) (*menuitem.MenuItem, error)
	Create(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error)
	Update(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error)
	Deactivate(ctx context.Context, id int64) error
}

// List returns the menu. Staff see inactive items as well.
func List(w http.ResponseWriter, r *http.Request, svc service) {
	actor, _ := auth.ActorFromContext(r.Context())

	items, err := svc.List(r.Context(), actor.HasRole(identity.RoleStaff))
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, items)
}

// Get returns one menu item.
func Get(w http.ResponseWriter, r *http.Request, svc service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperrors.NewValidation("id", "must be an integer"))

		return
	}

	item, err := svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, item)
}

// Create adds a menu item.
func Create(w http.ResponseWriter, r *http.Request, svc service) {
	var item menuitem.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respond.Error(w, apperrors.NewValidation("body", "failed to decode request body"))

		return
	}

	created, err := svc.Create(r.Context(), item)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// Update rewrites a menu item.
func Update(w http.ResponseWriter, r *http.Request, svc service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperrors.NewValidation("id", "must be an integer"))

		return
	}

	var item menuitem.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respond.Error(w, apperrors.NewValidation("body", "failed to decode request body"))

		return
	}
	item.ID = id

	updated, err := svc.Update(r.Context(), item)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// Delete deactivates a menu item. The row survives so historical orders
// keep resolving.
func Delete(w http.ResponseWriter, r *http.Request, svc service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperrors.NewValidation("id", "must be an integer"))

		return
	}

	if err := svc.Deactivate(r.Context(), id); err != nil {
		respond.Error(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
