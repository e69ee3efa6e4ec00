package sync

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"google.golang.org/api/calendar/v3"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
	"github.com/pwalczyk/gcal-birthdays/internal/store"
)

// Identity is the deduplication key for a remote birthday event: the
// case-folded event title plus the recurring anniversary's (month, day).
// The year is deliberately absent so annually-recurring events match, but
// the summary template embeds the birth year as text, which keeps people
// born in different years distinct.
type Identity struct {
	Summary string
	Month   time.Month
	Day     int
}

// IdentitySet is the session-scoped collection of identities known to exist
// remotely. It is built once from the remote directory and then grown
// in-memory after each successful create, so one run can never produce the
// same event twice.
type IdentitySet map[Identity]struct{}

// Has reports membership.
func (s IdentitySet) Has(id Identity) bool {
	_, ok := s[id]
	return ok
}

// Add records an identity as existing.
func (s IdentitySet) Add(id Identity) {
	s[id] = struct{}{}
}

// SummaryFormatter renders the remote event title from a name and the birth
// year. Injected so the CLI can supply a localized template; identity keys
// are derived from its output.
type SummaryFormatter func(name string, birthYear int) string

// DefaultSummary formats the title with the built-in English template.
func DefaultSummary(name string, birthYear int) string {
	return fmt.Sprintf(config.FallbackSummary, name, fmt.Sprintf("%04d", birthYear))
}

// foldSummary normalizes a title for identity comparison. cases.Fold is the
// Unicode case-folding used for caseless matching, not a locale lowercase.
func foldSummary(summary string) string {
	return cases.Fold().String(strings.TrimSpace(summary))
}

// EventIdentity derives the identity of an existing remote event.
// Events without a non-empty summary or without any start date are not
// identifiable and are reported with ok=false.
func EventIdentity(ev *calendar.Event) (Identity, bool) {
	if ev == nil || strings.TrimSpace(ev.Summary) == "" {
		return Identity{}, false
	}

	date, ok := eventStartDate(ev)
	if !ok {
		return Identity{}, false
	}

	return Identity{
		Summary: foldSummary(ev.Summary),
		Month:   date.Month(),
		Day:     date.Day(),
	}, true
}

// eventStartDate extracts the calendar date of an event's start, preferring
// the all-day form over a timed start.
func eventStartDate(ev *calendar.Event) (time.Time, bool) {
	if ev.Start == nil {
		return time.Time{}, false
	}
	if ev.Start.Date != "" {
		if t, err := time.Parse(config.DateFormatFullDash, ev.Start.Date); err == nil {
			return t, true
		}
		return time.Time{}, false
	}
	if ev.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, ev.Start.DateTime); err == nil {
			return t, true
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}

// RecordIdentity derives the identity a local record's event would have,
// along with the exact summary that will be written remotely.
func RecordIdentity(rec store.Record, format SummaryFormatter) (Identity, string, error) {
	birth, err := rec.BirthDate()
	if err != nil {
		return Identity{}, "", err
	}
	if format == nil {
		format = DefaultSummary
	}

	summary := format(rec.Name, birth.Year())
	return Identity{
		Summary: foldSummary(summary),
		Month:   birth.Month(),
		Day:     birth.Day(),
	}, summary, nil
}
