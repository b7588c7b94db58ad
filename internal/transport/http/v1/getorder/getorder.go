package getorder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/models/order"
	"github.com/workhub/workplace-backend/internal/transport/http/middleware/auth"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, actor identity.Actor, id int64) (*order.Order, error)
}

// GetOrder handles the single order lookup request.
func GetOrder(w http.ResponseWriter, r *http.Request, svc service) {
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

	o, err := svc.GetOrder(r.Context(), actor, id)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, o)
}
