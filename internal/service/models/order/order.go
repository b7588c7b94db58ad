package order

import (
	"time"

	"github.com/workhub/workplace-backend/internal/service/models/deliverytype"
	"github.com/workhub/workplace-backend/internal/service/models/orderline"
	"github.com/workhub/workplace-backend/internal/service/models/orderstatus"
)

// Order represents a placed cafeteria order.
type Order struct {
	ID                      int64                     `json:"id"`
	UserID                  string                    `json:"userId"`
	UserName                string                    `json:"userName"`
	TotalPriceCents         int64                     `json:"totalPriceCents"`
	DeliveryLocationType    deliverytype.DeliveryType `json:"deliveryLocationType"`
	DeliveryLocationDetails string                    `json:"deliveryLocationDetails"`
	Status                  orderstatus.Status        `json:"status"`
	CreatedAt               time.Time                 `json:"createdAt"`
	UpdatedAt               time.Time                 `json:"updatedAt"`
	Lines                   []orderline.OrderLine     `json:"items"`
}

// CartLine is one requested line of a not-yet-validated cart.
type CartLine struct {
	MenuItemID      int64            `json:"menuItemId"`
	Quantity        int              `json:"quantity"`
	SelectedOptions *SelectedOptions `json:"selectedOptions"`
}

// SelectedOptions carries the customization choices of a cart line.
// New per-line options extend this struct rather than the line itself.
type SelectedOptions struct {
	Sweetness *string `json:"sweetness"`
}

// Sweetness returns the requested sweetness, or nil when none was chosen.
func (cl CartLine) Sweetness() *string {
	if cl.SelectedOptions == nil {
		return nil
	}

	return cl.SelectedOptions.Sweetness
}

// DeliveryInfo is the requested delivery target of a cart.
type DeliveryInfo struct {
	LocationType    string `json:"deliveryLocationType"`
	LocationDetails string `json:"deliveryLocationDetails"`
}
