package favorite

import "time"

// Favorite is a user's saved attendee list, reusable across bookings.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Attendees []string  `json:"attendees"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
