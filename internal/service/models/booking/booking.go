package booking

import "time"

// Booking represents a reservation of a room for a time window.
type Booking struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"roomId"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Attendees []string  `json:"attendees"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
