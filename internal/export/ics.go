// Package export renders the local birthday list as an iCalendar document,
// for writing to a file or serving as a subscription feed.
package export

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
	"github.com/pwalczyk/gcal-birthdays/internal/store"
)

// Generator converts birthday records into an ICS byte stream.
type Generator struct {
	// Format renders each event title; nil falls back to the built-in
	// English template.
	Format func(name string, birthYear int) string

	// ReminderTrigger, when non-empty, attaches a DISPLAY alarm with this
	// ISO 8601 trigger (e.g. "-P1D") to every event.
	ReminderTrigger string
}

// Generate produces the calendar for the given records. Events are emitted
// for the previous, current, and next year so calendar apps have context
// without an immediate re-sync; years before a person's birth are skipped.
func (g *Generator) Generate(records []store.Record, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Logic runs on local dates; only the stamp is UTC. A birthday is the
	// person's local calendar date, not an absolute instant.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	skipped := 0
	for _, rec := range records {
		birth, err := rec.BirthDate()
		if err != nil {
			slog.Warn(config.MsgRecordSkipped,
				config.LogKeyComponent, config.CompExport,
				config.LogKeyName, rec.Name,
				config.LogKeyValue, rec.Date,
			)
			skipped++
			continue
		}

		for _, e := range g.recordEvents(rec.Name, birth, now) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if len(cal.Children) == 0 {
		// A valid, empty VCALENDAR keeps feed consumers happy.
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgExportWritten,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyCount, len(records)-skipped,
		config.LogKeySizeBytes, buf.Len(),
	)
	return buf.Bytes(), nil
}

// recordEvents builds one event per target year for a single record.
func (g *Generator) recordEvents(name string, birth, now time.Time) []*ical.Event {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	// Deterministic UID base so refreshes do not duplicate events in
	// subscribed clients.
	input := fmt.Sprintf(config.FormatHashInput,
		name, birth.Format(config.DateFormatFullDash), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	format := g.Format
	if format == nil {
		format = func(n string, y int) string {
			return fmt.Sprintf(config.FallbackSummary, n, fmt.Sprintf("%04d", y))
		}
	}
	summary := format(name, birth.Year())

	var events []*ical.Event
	for _, y := range targetYears {
		if y < birth.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID,
			fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		eventDate := time.Date(y, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if g.ReminderTrigger != "" {
			addAlarm(event, g.ReminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the trigger manually to avoid a VALUE=TEXT param.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
