package room

import "time"

// Room represents a bookable meeting room.
type Room struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	Features  []string  `json:"features"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QueryRoomsModel represents filter parameters for searching rooms.
// FreeFrom and FreeTo, when both set, restrict results to rooms without
// a booking overlapping [FreeFrom, FreeTo).
type QueryRoomsModel struct {
	MinCapacity int       `json:"minCapacity,omitempty"`
	Features    []string  `json:"features,omitempty"`
	ActiveOnly  bool      `json:"activeOnly,omitempty"`
	FreeFrom    time.Time `json:"freeFrom,omitempty"`
	FreeTo      time.Time `json:"freeTo,omitempty"`
}
