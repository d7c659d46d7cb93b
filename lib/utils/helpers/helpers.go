package helpers

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// FormatClock renders a "15:04" wall-clock value as "03:04 PM" for the
// timesheet form. Empty or unparsable values render blank.
func FormatClock(value string) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return ""
	}
	return t.Format("03:04 PM")
}

func FormatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("01/02/2006")
}

// FormatDateShort renders a date as weekday plus month/day ("Mon 06/03").
func FormatDateShort(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Mon 01/02")
}

// FormatHours renders decimal hours with one decimal place, blank when zero.
func FormatHours(hours float64) string {
	if hours <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", hours)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
