package orderline

import (
	"time"

	"github.com/workhub/workplace-backend/internal/service/models/sweetness"
)

// OrderLine represents one line within an order. ItemName and
// PriceAtOrderCents are snapshots taken at placement time and are never
// recomputed from the catalog.
type OrderLine struct {
	ID                int64                `json:"id"`
	OrderID           int64                `json:"orderId"`
	MenuItemID        int64                `json:"menuItemId"`
	ItemName          string               `json:"itemName"`
	Quantity          int                  `json:"quantity"`
	PriceAtOrderCents int64                `json:"priceAtOrderCents"`
	Sweetness         *sweetness.Sweetness `json:"sweetness"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}
