package sync

import (
	"context"
	"log/slog"

	"github.com/teambition/rrule-go"
	"google.golang.org/api/calendar/v3"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
	"github.com/pwalczyk/gcal-birthdays/internal/store"
)

// Tally counts the per-record outcomes of a reconciliation pass.
type Tally struct {
	Created int
	Skipped int
}

// Total returns the number of records processed.
func (t Tally) Total() int { return t.Created + t.Skipped }

// Reconciler decides, per local record, whether a remote event must be
// created, and does so without producing duplicates within one run. It never
// mutates the local store.
type Reconciler struct {
	Service    CalendarInserter
	CalendarID string
	ColorID    string
	Format     SummaryFormatter
}

// CalendarInserter is the slice of gcal.Service the reconciler needs.
type CalendarInserter interface {
	CreateEvent(ctx context.Context, calendarID string, event *calendar.Event) (*calendar.Event, error)
}

// Run processes records in their current order against the existing identity
// set, growing the set after each successful create. Progress steps start at
// baseStep+1. Cancellation is checked before each record; already-created
// events stay created and the partial tally is returned with ctx's error.
func (r *Reconciler) Run(ctx context.Context, records []store.Record, existing IdentitySet, sink ProgressSink, baseStep, total int) (Tally, error) {
	if sink == nil {
		sink = NopSink{}
	}
	log := slog.With(config.LogKeyComponent, config.CompReconcile)

	var tally Tally
	for i, rec := range records {
		if sink.Cancelled() {
			return tally, context.Canceled
		}
		if err := ctx.Err(); err != nil {
			return tally, err
		}

		identity, summary, err := RecordIdentity(rec, r.Format)
		if err != nil {
			// Records are validated on entry; an unparseable date here is
			// hand-edited data. Treat it as skipped rather than failing the
			// whole session.
			log.Warn(config.MsgRecordSkipped,
				config.LogKeyName, rec.Name,
				config.LogKeyValue, rec.Date,
			)
			tally.Skipped++
			sink.Report(baseStep+i+1, total)
			continue
		}

		if existing.Has(identity) {
			tally.Skipped++
			log.Debug(config.MsgEventSkipped, config.LogKeySummary, summary)
			sink.Report(baseStep+i+1, total)
			continue
		}

		event, err := buildEvent(rec, summary, r.ColorID)
		if err != nil {
			log.Warn(config.MsgRecordSkipped,
				config.LogKeyName, rec.Name,
				config.LogKeyValue, rec.Date,
			)
			tally.Skipped++
			sink.Report(baseStep+i+1, total)
			continue
		}

		if _, err := r.Service.CreateEvent(ctx, r.CalendarID, event); err != nil {
			return tally, err
		}

		existing.Add(identity)
		tally.Created++
		log.Debug(config.MsgEventCreated, config.LogKeySummary, summary)
		sink.Report(baseStep+i+1, total)
	}

	return tally, nil
}

// buildEvent assembles the all-day, yearly-recurring create payload.
// All-day events need an exclusive end, hence start + 1 day.
func buildEvent(rec store.Record, summary, colorID string) (*calendar.Event, error) {
	birth, err := rec.BirthDate()
	if err != nil {
		return nil, err
	}

	rule, err := rrule.NewRRule(rrule.ROption{Freq: rrule.YEARLY})
	if err != nil {
		return nil, err
	}

	end := birth.AddDate(0, 0, 1).Format(config.DateFormatFullDash)
	return &calendar.Event{
		Summary:    summary,
		Start:      &calendar.EventDateTime{Date: rec.Date},
		End:        &calendar.EventDateTime{Date: end},
		Recurrence: []string{config.RRulePrefix + rule.String()},
		ColorId:    colorID,
		Reminders: &calendar.EventReminders{
			UseDefault:      true,
			ForceSendFields: []string{"UseDefault"},
		},
	}, nil
}
