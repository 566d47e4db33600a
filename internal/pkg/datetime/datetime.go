// Package datetime validates and manipulates the string-typed temporal values
// used across the training domain (dates, timestamps, clock times, months).
package datetime

import (
	"math"
	"regexp"
	"strings"
	"time"
)

type (
	ISODate     string // YYYY-MM-DD
	ISODateTime string // RFC 3339 timestamp
	TimeString  string // HH:MM, 24h clock
	YearMonth   string // YYYY-MM
)

const (
	DateLayout      = "2006-01-02"
	YearMonthLayout = "2006-01"
	TimeLayout      = "15:04"
)

var (
	isoDateRegex     = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	isoDateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)
	timeStringRegex  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	yearMonthRegex   = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

func asString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case ISODate:
		return string(v), true
	case ISODateTime:
		return string(v), true
	case TimeString:
		return string(v), true
	case YearMonth:
		return string(v), true
	default:
		return "", false
	}
}

func IsISODate(value any) bool {
	s, ok := asString(value)
	return ok && isoDateRegex.MatchString(s)
}

func IsISODateTime(value any) bool {
	s, ok := asString(value)
	if !ok || !isoDateTimeRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

// IsTimeString accepts HH:MM with hour <= 23 and minute <= 59.
func IsTimeString(value any) bool {
	s, ok := asString(value)
	return ok && timeStringRegex.MatchString(s)
}

func IsYearMonth(value any) bool {
	s, ok := asString(value)
	return ok && yearMonthRegex.MatchString(s)
}

func CreateISODate(raw string) (ISODate, bool) {
	if !IsISODate(raw) {
		return "", false
	}
	return ISODate(raw), true
}

func CreateISODateTime(raw string) (ISODateTime, bool) {
	if !IsISODateTime(raw) {
		return "", false
	}
	return ISODateTime(raw), true
}

func CreateTimeString(raw string) (TimeString, bool) {
	if !IsTimeString(raw) {
		return "", false
	}
	return TimeString(raw), true
}

func CreateYearMonth(raw string) (YearMonth, bool) {
	if !IsYearMonth(raw) {
		return "", false
	}
	return YearMonth(raw), true
}

// FromTime formats t as a calendar date in t's location.
func FromTime(t time.Time) ISODate {
	return ISODate(t.Format(DateLayout))
}

func Today() ISODate {
	return FromTime(time.Now())
}

// DateOf trims a timestamp such as 2024-01-15T00:00:00Z down to its date.
// Input that does not start with a date comes back trimmed but otherwise as is.
func DateOf(raw string) ISODate {
	raw = strings.TrimSpace(raw)
	if len(raw) > 10 && IsISODate(raw[:10]) {
		return ISODate(raw[:10])
	}
	return ISODate(raw)
}

// Time parses d as midnight UTC.
func (d ISODate) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

func (d ISODate) String() string { return string(d) }

func (t ISODateTime) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, string(t))
}

// Bounds returns the first instant of the month and the first instant of the next one.
func (ym YearMonth) Bounds() (start, end time.Time, err error) {
	start, err = time.Parse(YearMonthLayout, string(ym))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}

// AddMonths moves date by n calendar months (n may be negative). The day of
// month is kept unless the target month is shorter, in which case it is clamped
// to that month's last day: 2024-01-31 + 1 = 2024-02-29. Malformed input is
// returned unchanged.
func AddMonths(date ISODate, n int) ISODate {
	t, err := date.Time()
	if err != nil || !IsISODate(date) {
		return date
	}

	total := int(t.Month()) - 1 + n
	year := t.Year() + floorDiv(total, 12)
	month := time.Month(total-floorDiv(total, 12)*12 + 1)

	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysUntilExpiry returns the signed number of calendar days from today to date.
// Positive means date lies in the future. Malformed dates yield 0.
func DaysUntilExpiry(date ISODate) int {
	return DaysUntilExpiryFrom(date, time.Now())
}

// DaysUntilExpiryFrom is DaysUntilExpiry with an explicit "now".
func DaysUntilExpiryFrom(date ISODate, now time.Time) int {
	if !IsISODate(date) {
		return 0
	}
	target, err := time.ParseInLocation(DateLayout, string(date), now.Location())
	if err != nil {
		return 0
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(target.Sub(today).Hours() / 24))
}

// IsExpiring reports whether date falls within the next thresholdDays days, today included.
func IsExpiring(date ISODate, thresholdDays int) bool {
	return IsExpiringFrom(date, thresholdDays, time.Now())
}

func IsExpiringFrom(date ISODate, thresholdDays int, now time.Time) bool {
	if !IsISODate(date) {
		return false
	}
	days := DaysUntilExpiryFrom(date, now)
	return days >= 0 && days <= thresholdDays
}

// IsExpired reports whether date lies strictly before today.
func IsExpired(date ISODate) bool {
	return IsExpiredFrom(date, time.Now())
}

func IsExpiredFrom(date ISODate, now time.Time) bool {
	if !IsISODate(date) {
		return false
	}
	return DaysUntilExpiryFrom(date, now) < 0
}
