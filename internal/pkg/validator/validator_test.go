package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidBadgeUID(t *testing.T) {
	valid := []string{"AB", "04:A3:1F:2B", "badge_001", "a1b2-c3d4", "DEADBEEF"}
	invalid := []string{"", "a", "has space", "uid!", "uid@reader", string(make([]byte, 65))}
	for _, uid := range valid {
		if !IsValidBadgeUID(uid) {
			t.Errorf("IsValidBadgeUID(%q) = false, want true", uid)
		}
	}
	for _, uid := range invalid {
		if IsValidBadgeUID(uid) {
			t.Errorf("IsValidBadgeUID(%q) = true, want false", uid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-02-28"); !ok {
		t.Error("IsValidDate(2025-02-28) = false, want true")
	}
	for _, bad := range []string{"2025-13-01", "2025-02-30", "28-02-2025", "2025/02/28", ""} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"00:00", "09:00", "17:30", "23:59"}
	invalid := []string{"24:00", "9:00", "09:60", "0900", ""}
	for _, s := range valid {
		if !IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidUTCOffset(t *testing.T) {
	valid := []string{"+05:00", "-08:00", "+00:00", "+05", "-11:30"}
	invalid := []string{"05:00", "+24:00", "+05:60", "UTC", ""}
	for _, s := range valid {
		if !IsValidUTCOffset(s) {
			t.Errorf("IsValidUTCOffset(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidUTCOffset(s) {
			t.Errorf("IsValidUTCOffset(%q) = true, want false", s)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"under_score", `under\_score`},
		{`back\slash`, `back\\slash`},
	}
	for _, c := range cases {
		if got := EscapeLike(c.input); got != c.want {
			t.Errorf("EscapeLike(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}
