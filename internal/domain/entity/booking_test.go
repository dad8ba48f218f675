package entity

import "testing"

func TestParseTargetStatus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  BookingStatus
		ok    bool
	}{
		{"confirmed", "confirmed", BookingConfirmed, true},
		{"completed", "completed", BookingCompleted, true},
		{"rejected", "rejected", BookingRejected, true},
		{"cancelled maps to rejected", "cancelled", BookingRejected, true},
		{"pending is not a target", "pending", "", false},
		{"empty", "", "", false},
		{"unknown", "approved", "", false},
		{"case sensitive", "Confirmed", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTargetStatus(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseTargetStatus(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"user", RoleUser, true},
		{"provider", RoleProvider, true},
		{"", RoleUser, true}, // empty defaults to user
		{"admin", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
