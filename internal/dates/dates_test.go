package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pwalczyk/gcal-birthdays/internal/dates"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge_BoundaryAroundToday(t *testing.T) {
	today := date(2024, time.March, 1)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday today", date(2000, time.March, 1), 24},
		{"birthday tomorrow", date(2000, time.March, 2), 23},
		{"birthday yesterday", date(2000, time.February, 29), 24},
		{"earlier month", date(2000, time.January, 15), 24},
		{"later month", date(2000, time.December, 31), 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dates.Age(tt.birth, today))
		})
	}
}

func TestAge_Feb29AgainstNonLeapYear(t *testing.T) {
	// Component comparison only; no leap adjustment, no panic.
	birth := date(2000, time.February, 29)
	assert.Equal(t, 24, dates.Age(birth, date(2025, time.February, 28)))
	assert.Equal(t, 25, dates.Age(birth, date(2025, time.March, 1)))
}

func TestNextOccurrence_Wraparound(t *testing.T) {
	today := date(2024, time.December, 31)
	birth := date(1990, time.January, 15)

	next := dates.NextOccurrence(birth, today)
	assert.Equal(t, date(2025, time.January, 15), next)
	assert.Equal(t, 15, dates.DaysUntil(birth, today))
}

func TestNextOccurrence_TodayIsNotPast(t *testing.T) {
	today := time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC)
	birth := date(1990, time.June, 1)

	next := dates.NextOccurrence(birth, today)
	assert.Equal(t, 2024, next.Year(), "A birthday later today stays in the current year")
	assert.Equal(t, 0, dates.DaysUntil(birth, today))
}

func TestNextOccurrence_FutureSameYear(t *testing.T) {
	today := date(2024, time.June, 1)
	birth := date(1985, time.November, 20)

	next := dates.NextOccurrence(birth, today)
	assert.Equal(t, date(2024, time.November, 20), next)
	assert.Equal(t, 172, dates.DaysUntil(birth, today))
}

func TestDaysUntil_AcrossSpringForward(t *testing.T) {
	// Europe/Warsaw loses an hour on the last Sunday of March; the count
	// must stay in calendar days regardless.
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	today := time.Date(2025, time.March, 25, 12, 0, 0, 0, warsaw)
	birth := date(1990, time.April, 5)

	assert.Equal(t, 11, dates.DaysUntil(birth, today))
}

func TestChronoKey(t *testing.T) {
	assert.Equal(t, "12-25", dates.ChronoKey("1990-12-25"))
	assert.Equal(t, "01-01", dates.ChronoKey("1985-01-01"))
	assert.Equal(t, "bad", dates.ChronoKey("bad"))
}
