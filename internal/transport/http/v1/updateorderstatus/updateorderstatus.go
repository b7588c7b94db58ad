package updateorderstatus

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/service/models/order"
	"github.com/workhub/workplace-backend/internal/service/models/orderstatus"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	AdvanceStatus(ctx context.Context, id int64, next orderstatus.Status) (*order.Order, error)
}

type request struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles the staff-facing status advancement request.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, svc service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperrors.NewValidation("id", "must be an integer"))

		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperrors.NewValidation("body", "failed to decode request body"))

		return
	}

	next, err := orderstatus.ParseStatus(req.Status)
	if err != nil {
		respond.Error(w, apperrors.NewValidation("status", "unknown status %q", req.Status))

		return
	}

	o, err := svc.AdvanceStatus(r.Context(), id, next)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, o)
}
