package sync_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/stretchr/testify/mock"
	"google.golang.org/api/calendar/v3"

	"github.com/pwalczyk/gcal-birthdays/internal/gcal"
)

// MockService simulates the calendar API for unit tests using testify/mock.
type MockService struct {
	mock.Mock
}

var _ gcal.Service = (*MockService)(nil)

func (m *MockService) ListCalendars(ctx context.Context) ([]*calendar.CalendarListEntry, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*calendar.CalendarListEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) CreateCalendar(ctx context.Context, name, timeZone string) (*calendar.Calendar, error) {
	args := m.Called(ctx, name, timeZone)
	if v := args.Get(0); v != nil {
		return v.(*calendar.Calendar), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) PatchCalendarDefaults(ctx context.Context, calendarID string, reminderMinutes int64) error {
	args := m.Called(ctx, calendarID, reminderMinutes)
	return args.Error(0)
}

func (m *MockService) ListEvents(ctx context.Context, calendarID, pageToken string) ([]*calendar.Event, string, error) {
	args := m.Called(ctx, calendarID, pageToken)
	if v := args.Get(0); v != nil {
		return v.([]*calendar.Event), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *MockService) CreateEvent(ctx context.Context, calendarID string, event *calendar.Event) (*calendar.Event, error) {
	args := m.Called(ctx, calendarID, event)
	if v := args.Get(0); v != nil {
		return v.(*calendar.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

// stubAuthorizer satisfies sync.Authorizer without touching the network.
type stubAuthorizer struct {
	err error
}

func (s stubAuthorizer) Authorize(ctx context.Context) (*http.Client, error) {
	if s.err != nil {
		return nil, s.err
	}
	return http.DefaultClient, nil
}

// recordingSink captures progress reports and can flip to cancelled once a
// given step has been reported.
type recordingSink struct {
	mu           sync.Mutex
	steps        []int
	total        int
	cancelAtStep int // 0 means never cancel
}

func (r *recordingSink) Report(step, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
	r.total = total
}

func (r *recordingSink) Cancelled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelAtStep == 0 {
		return false
	}
	return len(r.steps) > 0 && r.steps[len(r.steps)-1] >= r.cancelAtStep
}

// allDayEvent builds a minimal remote event fixture.
func allDayEvent(summary, date string) *calendar.Event {
	return &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{Date: date},
	}
}

// eventPage fabricates n distinct all-day events for pagination fixtures.
func eventPage(offset, n int) []*calendar.Event {
	items := make([]*calendar.Event, 0, n)
	for i := 0; i < n; i++ {
		day := 1 + (offset+i)%28
		month := 1 + ((offset+i)/28)%12
		items = append(items, allDayEvent(
			fmt.Sprintf("Birthday: Person %d 1990", offset+i),
			fmt.Sprintf("1990-%02d-%02d", month, day),
		))
	}
	return items
}
