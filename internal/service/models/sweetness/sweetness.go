package sweetness

import (
	"database/sql/driver"
	"errors"
)

// Sweetness is the customization level a menu item may support.
type Sweetness string

const (
	SweetnessNoSugar     Sweetness = "no_sugar"
	SweetnessLowSweet    Sweetness = "low_sweet"
	SweetnessNormalSweet Sweetness = "normal_sweet"
)

var ErrInvalidSweetness = errors.New("invalid sweetness")

func (s Sweetness) String() string {
	return string(s)
}

func (s Sweetness) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseSweetness(s string) (Sweetness, error) {
	switch s {
	case SweetnessNoSugar.String():
		return SweetnessNoSugar, nil
	case SweetnessLowSweet.String():
		return SweetnessLowSweet, nil
	case SweetnessNormalSweet.String():
		return SweetnessNormalSweet, nil
	default:
		return "", ErrInvalidSweetness
	}
}
