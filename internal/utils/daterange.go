package utils

import (
	"fmt"
	"time"
)

// Window names accepted by the due-date filter.
const (
	WindowToday = "today"
	WindowWeek  = "week"
	WindowMonth = "month"
)

// WindowRange returns the inclusive [start, end] range for a named due-date
// window, evaluated at now in its location. Weeks run Monday through Sunday.
func WindowRange(window string, now time.Time) (time.Time, time.Time, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch window {
	case WindowToday:
		return startOfDay, endOf(startOfDay.AddDate(0, 0, 1)), nil
	case WindowWeek:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday closes the week
		}
		monday := startOfDay.AddDate(0, 0, -(weekday - 1))
		return monday, endOf(monday.AddDate(0, 0, 7)), nil
	case WindowMonth:
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return firstOfMonth, endOf(firstOfMonth.AddDate(0, 1, 0)), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date filter: %s", window)
	}
}

// endOf converts an exclusive range boundary into an inclusive one.
func endOf(next time.Time) time.Time {
	return next.Add(-time.Nanosecond)
}
