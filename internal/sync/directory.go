package sync

import (
	"context"
	"log/slog"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
	"github.com/pwalczyk/gcal-birthdays/internal/gcal"
)

// ResolveCalendar finds the target calendar by exact display-name equality,
// creating it when absent, and (re)applies the default reminder policy.
// When duplicate names exist the first listed entry wins.
func ResolveCalendar(ctx context.Context, svc gcal.Service, name, timeZone string, reminderMinutes int64) (string, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompDirectory,
		config.LogKeyCalendar, name,
	)

	entries, err := svc.ListCalendars(ctx)
	if err != nil {
		return "", err
	}

	var calendarID string
	for _, entry := range entries {
		if entry.Summary == name {
			calendarID = entry.Id
			break
		}
	}

	if calendarID == "" {
		created, err := svc.CreateCalendar(ctx, name, timeZone)
		if err != nil {
			return "", err
		}
		calendarID = created.Id
		log.Info(config.MsgCalendarCreated, config.LogKeyCalID, calendarID)
	} else {
		log.Debug(config.MsgCalendarFound, config.LogKeyCalID, calendarID)
	}

	if err := svc.PatchCalendarDefaults(ctx, calendarID, reminderMinutes); err != nil {
		return "", err
	}
	log.Debug(config.MsgDefaultsPatched, config.LogKeyCalID, calendarID)

	return calendarID, nil
}

// LoadExistingIdentities pages through every event on the calendar
// (recurring series as master events, not expanded instances) and reduces
// them to an IdentitySet. Events without a usable summary or start date are
// ignored. Any API failure aborts: a partial directory is not safe to
// reconcile against.
func LoadExistingIdentities(ctx context.Context, svc gcal.Service, calendarID string) (IdentitySet, error) {
	existing := make(IdentitySet)
	pageToken := ""
	pages := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, next, err := svc.ListEvents(ctx, calendarID, pageToken)
		if err != nil {
			return nil, err
		}
		pages++

		for _, ev := range items {
			if id, ok := EventIdentity(ev); ok {
				existing.Add(id)
			}
		}

		if next == "" {
			break
		}
		pageToken = next
	}

	slog.Debug(config.MsgDirectoryLoaded,
		config.LogKeyComponent, config.CompDirectory,
		config.LogKeyCalID, calendarID,
		config.LogKeyPages, pages,
		config.LogKeyCount, len(existing),
	)
	return existing, nil
}
