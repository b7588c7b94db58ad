package booking

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical windows", at(0), at(1), at(0), at(1), true},
		{"b inside a", at(0), at(4), at(1), at(2), true},
		{"partial overlap at end", at(0), at(2), at(1), at(3), true},
		{"partial overlap at start", at(1), at(3), at(0), at(2), true},
		{"back to back", at(0), at(1), at(1), at(2), false},
		{"back to back reversed", at(1), at(2), at(0), at(1), false},
		{"disjoint", at(0), at(1), at(3), at(4), false},
	}
	for _, tt := range tests {
		if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
	}
}
