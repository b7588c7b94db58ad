package notify

import (
	"strings"
	"testing"

	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/models/order"
	"github.com/workhub/workplace-backend/internal/service/models/orderline"
	"github.com/workhub/workplace-backend/internal/service/models/sweetness"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{5000, "$50.00"},
		{10125, "$101.25"},
		{-250, "-$2.50"},
	}
	for _, tt := range tests {
		if got := FormatCents(tt.cents); got != tt.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestFormatOrderSummary(t *testing.T) {
	low := sweetness.SweetnessLowSweet
	o := order.Order{
		ID:                      77,
		TotalPriceCents:         10000,
		DeliveryLocationType:    "meeting_room",
		DeliveryLocationDetails: "Room 401",
		Lines: []orderline.OrderLine{
			{ItemName: "Coffee", Quantity: 2, PriceAtOrderCents: 5000, Sweetness: &low},
		},
	}

	got := FormatOrderSummary(o, identity.Actor{ID: "u-123", DisplayName: "Dana"})

	for _, want := range []string{"#77", "Dana", "meeting room Room 401", "2 x Coffee", "$50.00", "(low_sweet)", "Total: $100.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestFormatOrderSummaryFallsBackToTruncatedID(t *testing.T) {
	o := order.Order{ID: 1, DeliveryLocationType: "canteen", DeliveryLocationDetails: "table 5"}

	got := FormatOrderSummary(o, identity.Actor{ID: "0123456789abcdef"})

	if !strings.Contains(got, "01234567") {
		t.Errorf("summary should contain the truncated id:\n%s", got)
	}
	if strings.Contains(got, "0123456789abcdef") {
		t.Errorf("summary should not contain the full id:\n%s", got)
	}
}
