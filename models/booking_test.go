package models

import "testing"

func TestNormalizeSlotTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"14:30:00", "14-30-00"},
		{"09:00:00", "09-00-00"},
		{"14-30-00", "14-30-00"}, // already normalized
	}

	for _, tc := range cases {
		if got := NormalizeSlotTime(tc.in); got != tc.want {
			t.Errorf("NormalizeSlotTime(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlotKey(t *testing.T) {
	booking := &Booking{
		Date:     "2025-06-01",
		SlotTime: NormalizeSlotTime("14:30:00"),
	}

	if got := booking.SlotKey(); got != "bookings/2025-06-01/14-30-00" {
		t.Errorf("SlotKey() = %q, want bookings/2025-06-01/14-30-00", got)
	}
}
