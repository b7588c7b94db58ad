package listorders

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/models/order"
	"github.com/workhub/workplace-backend/internal/transport/http/middleware/auth"
	"github.com/workhub/workplace-backend/internal/transport/http/v1/respond"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context, actor identity.Actor, filter order.QueryOrdersModel) ([]order.Order, error)
}

// parseIntSlice parses a comma-separated string to a slice of int64.
func parseIntSlice(s string) []int64 {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]int64, 0, len(parts))
	for _, part := range parts {
		if val, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
			result = append(result, val)
		}
	}

	return result
}

// ListOrders handles the order listing request. Non-admin callers are
// scoped to their own orders by the service layer.
func ListOrders(w http.ResponseWriter, r *http.Request, svc service) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)

		return
	}

	query := r.URL.Query()
	filter := order.QueryOrdersModel{
		Ids: parseIntSlice(query.Get("ids")),
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(query.Get("offset")); err == nil {
		filter.Offset = offset
	}

	orders, err := svc.GetOrders(r.Context(), actor, filter)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, orders)
}
