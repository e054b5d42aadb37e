package stats

import (
	"fmt"
	"time"
)

// Period formatting maps a timestamp, interpreted in its own location, to the
// bucket label used by the aggregation engine. These functions have no
// failure modes; any valid instant produces a valid label.

// FormatDay returns the YYYY-MM-DD label for t.
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatMonth returns the YYYY-MM label for t.
func FormatMonth(t time.Time) string {
	return t.Format("2006-01")
}

// FormatISOWeek returns the YYYY-Www label for t following the ISO-8601 week
// rule: weeks start on Monday and week 1 is the week containing the year's
// first Thursday. The year component is the ISO year, which differs from the
// calendar year at boundaries (2023-01-01 labels as 2022-W52).
func FormatISOWeek(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// WeekdayName returns the calendar day-of-week name for t (Sunday..Saturday).
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// HourOfDay returns the local hour component of t, 0-23.
func HourOfDay(t time.Time) int {
	return t.Hour()
}
