package configuration

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/service/models/coreconfig"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/transport/http/middleware/auth"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	List(ctx context.Context) ([]coreconfig.Setting, error)
	Get(ctx context.Context, key string) (*coreconfig.Setting, error)
	Set(ctx context.Context, actor identity.Actor, key string, value json.RawMessage) (*coreconfig.Setting, error)
}

// List returns all configuration entries.
func List(w http.ResponseWriter, r *http.Request, svc service) {
	settings, err := svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, settings)
}

// Get returns one configuration entry.
func Get(w http.ResponseWriter, r *http.Request, svc service) {
	setting, err := svc.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, setting)
}

// Set writes one configuration entry.
func Set(w http.ResponseWriter, r *http.Request, svc service) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)

		return
	}

	var value json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		respond.Error(w, apperrors.NewValidation("body", "failed to decode request body"))

		return
	}

	setting, err := svc.Set(r.Context(), actor, chi.URLParam(r, "key"), value)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, setting)
}
