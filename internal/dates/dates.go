// Package dates holds the pure date arithmetic shared by the record store,
// the exporters, and the sync engine. Every function takes "today" explicitly
// so callers can inject a fixed clock in tests.
package dates

import (
	"time"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
)

// Age returns the completed age at "today" for the given birth date.
// Only the (month, day) components are compared, so a Feb 29 birth date is
// handled without any leap-year special case.
func Age(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// NextOccurrence maps the birth date's (month, day) onto the current year,
// or onto the next year when that date has already passed.
// Go's time.Date normalizes Feb 29 to March 1st in non-leap years.
func NextOccurrence(birth, today time.Time) time.Time {
	loc := today.Location()
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	candidate := time.Date(today.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(todayStart) {
		candidate = time.Date(today.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	}
	return candidate
}

// DaysUntil returns the number of calendar days from "today" to the next
// occurrence of the birth date. Zero means the birthday is today. Both dates
// are normalized to UTC midnight so a DST transition in between cannot skew
// the count.
func DaysUntil(birth, today time.Time) int {
	next := NextOccurrence(birth, today)
	from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// ChronoKey reduces a stored "YYYY-MM-DD" date string to its year-agnostic
// "MM-DD" suffix, the chronological sort key. Strings shorter than the key
// are returned unchanged; they sort first, which is acceptable for data that
// never passed validation.
func ChronoKey(date string) string {
	if len(date) < config.ChronoKeyLength {
		return date
	}
	return date[len(date)-config.ChronoKeyLength:]
}
