package notify

import (
	"fmt"
	"strings"

	"github.com/workhub/workplace-backend/internal/service/models/deliverytype"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/models/order"
)

// FormatOrderSummary renders the human-readable notification text for a
// placed order: short order id, actor, delivery target, itemized lines and
// the total.
func FormatOrderSummary(o order.Order, actor identity.Actor) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New order #%d from %s\n", o.ID, actor.DisplayOrID())
	fmt.Fprintf(&b, "Deliver to: %s\n\n", describeTarget(o))

	for _, line := range o.Lines {
		fmt.Fprintf(&b, "%d x %s - %s", line.Quantity, line.ItemName, FormatCents(line.PriceAtOrderCents))
		if line.Sweetness != nil {
			fmt.Fprintf(&b, " (%s)", line.Sweetness.String())
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nTotal: %s", FormatCents(o.TotalPriceCents))

	return b.String()
}

func describeTarget(o order.Order) string {
	if o.DeliveryLocationType == deliverytype.DeliveryMeetingRoom {
		return "meeting room " + o.DeliveryLocationDetails
	}

	return o.DeliveryLocationDetails
}

// FormatCents renders an integer cent amount as a decimal money string.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
