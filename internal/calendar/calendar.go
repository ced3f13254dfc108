// Package calendar implements the ISO-calendar-day arithmetic used throughout
// the planning engine. All functions operate on local-calendar-day semantics
// (spec.md §3, §9 "Calendar edge") — days are normalized to midnight before
// any difference or offset is computed, so the results don't drift across
// daylight-saving transitions the way raw duration math would.
package calendar

import (
	"fmt"
	"time"
)

const ISOLayout = "2006-01-02"

// ParseISO parses a YYYY-MM-DD calendar day, field-aware on error, in the
// style of the teacher's generation.ParseRequiredDate.
func ParseISO(value, field string) (time.Time, error) {
	t, err := time.ParseInLocation(ISOLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date %q (expected YYYY-MM-DD): %w", field, value, err)
	}
	return t, nil
}

// normalize strips any time-of-day component, anchoring to local midnight.
func normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays returns the calendar day `n` days after `t` (local-calendar-day, DST-safe).
func AddDays(t time.Time, n int) time.Time {
	t = normalize(t)
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// DiffDays counts the whole number of local-calendar-day boundaries between
// `from` and `to` (to - from), not elapsed wall-clock duration. Computed via
// date-component day numbers rather than Duration math: subtracting
// time.Time values directly loses or gains an hour across a DST transition
// (spec.md §9 "this matters around DST transitions"), the same pitfall
// AddDays avoids by normalizing through time.Date instead of Add.
func DiffDays(from, to time.Time) int {
	return dayNumber(to) - dayNumber(from)
}

// dayNumber converts a calendar day to a DST-independent integer by
// re-anchoring its year/month/day components in UTC, where there is no
// daylight-saving offset to distort the division.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// WeekdayIndex maps a calendar day onto 0=Monday ... 6=Sunday (spec.md §4.1),
// the inverse of Go's own 0=Sunday convention.
func WeekdayIndex(t time.Time) int {
	switch t.Weekday() {
	case time.Sunday:
		return 6
	default:
		return int(t.Weekday()) - 1
	}
}

// SundayBasedWeekday maps a calendar day onto 0=Sunday ... 6=Saturday, the
// convention DayPlan.Weekday uses (spec.md §3).
func SundayBasedWeekday(t time.Time) int {
	return int(t.Weekday())
}

// MondayOf returns the Monday that starts the calendar week containing `t`.
func MondayOf(t time.Time) time.Time {
	idx := WeekdayIndex(t)
	return AddDays(t, -idx)
}

// FormatISO renders a calendar day as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return normalize(t).Format(ISOLayout)
}
