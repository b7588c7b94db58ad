package orderstatus

import "testing"

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusPreparing, false},
		{StatusPending, StatusDelivered, false},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusPreparing, true},
		{StatusConfirmed, StatusDelivered, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPreparing, StatusDelivered, true},
		{StatusPreparing, StatusConfirmed, false},
		{StatusPreparing, StatusCancelled, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusConfirmed, StatusConfirmed, false},
	}
	for _, tt := range tests {
		if got := ValidTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled} {
		got, err := ParseStatus(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseStatus("shipped"); err == nil {
		t.Error("ParseStatus should reject unknown status")
	}
}
