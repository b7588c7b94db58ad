package orderstatus

import (
	"database/sql/driver"
	"errors"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusPending.String():
		return StatusPending, nil
	case StatusConfirmed.String():
		return StatusConfirmed, nil
	case StatusPreparing.String():
		return StatusPreparing, nil
	case StatusDelivered.String():
		return StatusDelivered, nil
	case StatusCancelled.String():
		return StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// ValidTransition reports whether an order may move from one status to the
// next. Cancellation is allowed from any non-terminal state.
func ValidTransition(from, to Status) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusConfirmed
	case StatusConfirmed:
		return to == StatusPreparing
	case StatusPreparing:
		return to == StatusDelivered
	default:
		return false
	}
}
