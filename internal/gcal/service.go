// Package gcal wraps the Google Calendar API behind a narrow interface so
// the sync engine can be tested against a mock instead of the network.
package gcal

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
)

// Service is the calendar operations surface the sync engine consumes.
// The production implementation talks to Google Calendar; tests supply a
// testify mock.
type Service interface {
	// ListCalendars returns every calendar visible to the account.
	ListCalendars(ctx context.Context) ([]*calendar.CalendarListEntry, error)

	// CreateCalendar creates a secondary calendar with the given display
	// name and time zone and returns it.
	CreateCalendar(ctx context.Context, name, timeZone string) (*calendar.Calendar, error)

	// PatchCalendarDefaults sets the default popup reminder on the calendar.
	// Safe to reapply on every run.
	PatchCalendarDefaults(ctx context.Context, calendarID string, reminderMinutes int64) error

	// ListEvents fetches one page of events, recurring series represented by
	// their master event (singleEvents=false). An empty next token ends the
	// pagination.
	ListEvents(ctx context.Context, calendarID, pageToken string) (items []*calendar.Event, nextPageToken string, err error)

	// CreateEvent inserts an event into the calendar.
	CreateEvent(ctx context.Context, calendarID string, event *calendar.Event) (*calendar.Event, error)
}

// googleService implements Service over google.golang.org/api/calendar/v3.
type googleService struct {
	svc *calendar.Service
}

// NewService builds a Service from an authenticated HTTP client.
func NewService(ctx context.Context, client *http.Client) (Service, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrServiceInit, err)
	}
	return &googleService{svc: svc}, nil
}

func (g *googleService) ListCalendars(ctx context.Context) ([]*calendar.CalendarListEntry, error) {
	resp, err := g.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrListCalendars, err)
	}
	return resp.Items, nil
}

func (g *googleService) CreateCalendar(ctx context.Context, name, timeZone string) (*calendar.Calendar, error) {
	created, err := g.svc.Calendars.Insert(&calendar.Calendar{
		Summary:  name,
		TimeZone: timeZone,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateCalendar, err)
	}
	return created, nil
}

func (g *googleService) PatchCalendarDefaults(ctx context.Context, calendarID string, reminderMinutes int64) error {
	entry := &calendar.CalendarListEntry{
		DefaultReminders: []*calendar.EventReminder{{
			Method:  config.ReminderMethodPopup,
			Minutes: reminderMinutes,
		}},
	}
	if _, err := g.svc.CalendarList.Patch(calendarID, entry).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrPatchCalendar, err)
	}
	return nil
}

func (g *googleService) ListEvents(ctx context.Context, calendarID, pageToken string) ([]*calendar.Event, string, error) {
	call := g.svc.Events.List(calendarID).
		SingleEvents(false).
		MaxResults(config.EventPageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", config.ErrListEvents, err)
	}
	return resp.Items, resp.NextPageToken, nil
}

func (g *googleService) CreateEvent(ctx context.Context, calendarID string, event *calendar.Event) (*calendar.Event, error) {
	created, err := g.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateEvent, err)
	}
	return created, nil
}
