package datetime

import (
	"testing"
	"time"
)

func TestIsISODate(t *testing.T) {
	valid := []string{"2024-01-15", "2000-12-31", "1999-02-30"}
	invalid := []string{"", "2024-1-15", "2024-13-01", "2024-00-10", "2024-01-32", "2024/01/15", "20240115", "2024-01-15T00:00:00Z"}
	for _, s := range valid {
		if !IsISODate(s) {
			t.Errorf("IsISODate(%q) = false, want true", s)
		}
		if d, ok := CreateISODate(s); !ok || string(d) != s {
			t.Errorf("CreateISODate(%q) = (%q, %v)", s, d, ok)
		}
	}
	for _, s := range invalid {
		if IsISODate(s) {
			t.Errorf("IsISODate(%q) = true, want false", s)
		}
		if _, ok := CreateISODate(s); ok {
			t.Errorf("CreateISODate(%q) ok = true, want false", s)
		}
	}
	if IsISODate(nil) || IsISODate(20240115) {
		t.Error("IsISODate accepted a non-string")
	}
}

func TestIsISODateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123Z"}
	invalid := []string{"", "2024-01-15", "2024-01-15 10:30:00", "2024-01-15T25:30:00Z", "2024-01-15T10:30:00"}
	for _, s := range valid {
		if !IsISODateTime(s) {
			t.Errorf("IsISODateTime(%q) = false, want true", s)
		}
		if _, ok := CreateISODateTime(s); !ok {
			t.Errorf("CreateISODateTime(%q) ok = false", s)
		}
	}
	for _, s := range invalid {
		if IsISODateTime(s) {
			t.Errorf("IsISODateTime(%q) = true, want false", s)
		}
	}
}

func TestIsTimeString(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"12:60", false},
		{"9:30", false},
		{"09:30:00", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsTimeString(c.input); got != c.want {
			t.Errorf("IsTimeString(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsYearMonth(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"2024-01", true},
		{"2024-12", true},
		{"2024-00", false},
		{"2024-13", false},
		{"2024-1", false},
		{"2024-01-01", false},
	}
	for _, c := range cases {
		if got := IsYearMonth(c.input); got != c.want {
			t.Errorf("IsYearMonth(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestAddMonths(t *testing.T) {
	cases := []struct {
		date ISODate
		n    int
		want ISODate
	}{
		{"2024-01-15", 3, "2024-04-15"},
		{"2024-11-15", 3, "2025-02-15"},
		{"2024-12-01", 1, "2025-01-01"},
		{"2024-03-15", -3, "2023-12-15"},
		{"2024-01-15", 0, "2024-01-15"},
		{"2024-01-15", 24, "2026-01-15"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-03-31", 1, "2024-04-30"},
		{"not-a-date", 1, "not-a-date"},
	}
	for _, c := range cases {
		if got := AddMonths(c.date, c.n); got != c.want {
			t.Errorf("AddMonths(%q, %d) = %q, want %q", c.date, c.n, got, c.want)
		}
	}
}

func TestDaysUntilExpiryFrom(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 45, 0, 0, time.UTC)
	cases := []struct {
		date ISODate
		want int
	}{
		{"2024-06-10", 0},
		{"2024-06-11", 1},
		{"2024-07-10", 30},
		{"2024-06-09", -1},
		{"2023-06-10", -366},
	}
	for _, c := range cases {
		if got := DaysUntilExpiryFrom(c.date, now); got != c.want {
			t.Errorf("DaysUntilExpiryFrom(%q) = %d, want %d", c.date, got, c.want)
		}
	}
}

func TestExpiryBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	threshold := 30

	atThreshold := FromTime(now.AddDate(0, 0, threshold))
	pastThreshold := FromTime(now.AddDate(0, 0, threshold+1))
	yesterday := FromTime(now.AddDate(0, 0, -1))
	today := FromTime(now)

	if !IsExpiringFrom(atThreshold, threshold, now) {
		t.Errorf("date exactly %d days ahead should be expiring", threshold)
	}
	if IsExpiringFrom(pastThreshold, threshold, now) {
		t.Errorf("date %d days ahead should not be expiring", threshold+1)
	}
	if !IsExpiringFrom(today, threshold, now) {
		t.Error("today should be expiring")
	}
	if IsExpiredFrom(today, now) {
		t.Error("today should not be expired")
	}
	if !IsExpiredFrom(yesterday, now) {
		t.Error("yesterday should be expired")
	}
	if IsExpiringFrom(yesterday, threshold, now) {
		t.Error("an expired date should not count as expiring")
	}
}

func TestExpiryAgainstWallClock(t *testing.T) {
	future := FromTime(time.Now().AddDate(0, 0, 7))
	past := FromTime(time.Now().AddDate(0, 0, -7))

	if got := DaysUntilExpiry(future); got != 7 {
		t.Errorf("DaysUntilExpiry(+7d) = %d, want 7", got)
	}
	if !IsExpiring(future, 7) || IsExpiring(future, 6) {
		t.Error("IsExpiring threshold boundary mismatch")
	}
	if !IsExpired(past) || IsExpired(future) {
		t.Error("IsExpired mismatch")
	}
}

func TestYearMonthBounds(t *testing.T) {
	start, end, err := YearMonth("2024-12").Bounds()
	if err != nil {
		t.Fatalf("Bounds() error = %v", err)
	}
	if start.Format(DateLayout) != "2024-12-01" || end.Format(DateLayout) != "2025-01-01" {
		t.Errorf("Bounds() = %s..%s", start, end)
	}
}

func TestDateOf(t *testing.T) {
	cases := map[string]ISODate{
		"2024-01-15":           "2024-01-15",
		"2024-01-15T08:00:00Z": "2024-01-15",
		" 2024-01-15 ":         "2024-01-15",
		"15/01/2024":           "15/01/2024",
		"":                     "",
	}
	for in, want := range cases {
		if got := DateOf(in); got != want {
			t.Errorf("DateOf(%q) = %q, want %q", in, got, want)
		}
	}
}
