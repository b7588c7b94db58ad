package placeorder

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/models/order"
	"github.com/workhub/workplace-backend/internal/transport/http/middleware/auth"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(
		ctx context.Context,
		actor identity.Actor,
		cartLines []order.CartLine,
		deliveryInfo order.DeliveryInfo,
	) (*order.Order, error)
}

type request struct {
	CartItems    []order.CartLine   `json:"cartItems"`
	DeliveryInfo order.DeliveryInfo `json:"deliveryInfo"`
}

// PlaceOrder handles the order placement request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, svc service) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)

		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperrors.NewValidation("body", "failed to decode request body"))

		return
	}

	placed, err := svc.PlaceOrder(r.Context(), actor, req.CartItems, req.DeliveryInfo)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, placed)
}
