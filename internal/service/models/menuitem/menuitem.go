package menuitem

import "time"

// MenuItem represents a catalog item offered by the cafeteria.
type MenuItem struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	PriceCents        int64     `json:"priceCents"`
	ImageURL          string    `json:"imageUrl"`
	Category          string    `json:"category"`
	IsActive          bool      `json:"isActive"`
	SupportsSweetness bool      `json:"supportsSweetness"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
