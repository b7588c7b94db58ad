package deliverytype

import (
	"database/sql/driver"
	"errors"
)

// DeliveryType is the destination kind of a food order.
type DeliveryType string

const (
	DeliveryMeetingRoom DeliveryType = "meeting_room"
	DeliveryCanteen     DeliveryType = "canteen"
)

var ErrInvalidDeliveryType = errors.New("invalid delivery location type")

func (d DeliveryType) String() string {
	return string(d)
}

func (d DeliveryType) Value() (driver.Value, error) {
	return d.String(), nil
}

func ParseDeliveryType(s string) (DeliveryType, error) {
	switch s {
	case DeliveryMeetingRoom.String():
		return DeliveryMeetingRoom, nil
	case DeliveryCanteen.String():
		return DeliveryCanteen, nil
	default:
		return "", ErrInvalidDeliveryType
	}
}
