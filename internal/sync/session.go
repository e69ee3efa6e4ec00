package sync

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
	"github.com/pwalczyk/gcal-birthdays/internal/gcal"
	"github.com/pwalczyk/gcal-birthdays/internal/store"
)

// State tracks where a session is in its fixed sequence.
type State int

const (
	StateNotStarted State = iota
	StateAuthorizing
	StateResolvingCalendar
	StateReadingExisting
	StateExporting
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateAuthorizing:
		return "authorizing"
	case StateResolvingCalendar:
		return "resolving_calendar"
	case StateReadingExisting:
		return "reading_existing"
	case StateExporting:
		return "exporting"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Outcome summarizes a finished session. Cancelled sessions carry their
// partial counts and are not failures.
type Outcome struct {
	Created   int
	Skipped   int
	Cancelled bool
}

// Authorizer yields an authenticated HTTP client or a classified failure.
type Authorizer interface {
	Authorize(ctx context.Context) (*http.Client, error)
}

// ServiceFactory builds the calendar service from the authenticated client.
// Indirected so tests can substitute a mock service.
type ServiceFactory func(ctx context.Context, client *http.Client) (gcal.Service, error)

// Session orchestrates one export run: authorize, resolve the target
// calendar, read the existing-event directory, reconcile. One session owns
// its identity set exclusively; concurrent sessions are not supported.
type Session struct {
	Auth       Authorizer
	NewService ServiceFactory
	Settings   config.Settings
	Format     SummaryFormatter

	state State
}

// State returns the session's current position for observability and tests.
func (s *Session) State() State { return s.state }

func (s *Session) setState(st State) {
	s.state = st
	slog.Debug(config.MsgSessionState,
		config.LogKeyComponent, config.CompSync,
		config.LogKeyState, st.String(),
	)
}

// Run executes the whole session against the given records. It returns
// either an Outcome (including the cancelled-with-partial-counts case) or a
// classified *Error; no raw transport error reaches the caller.
//
// Progress is reported against a fixed total of len(records) plus the three
// overhead steps (authorize, resolve calendar, read existing).
func (s *Session) Run(ctx context.Context, records []store.Record, sink ProgressSink) (Outcome, error) {
	if sink == nil {
		sink = NopSink{}
	}
	start := time.Now()
	total := len(records) + config.ProgressOverheadSteps
	log := slog.With(config.LogKeyComponent, config.CompSync)
	log.Info(config.MsgSyncStarted, config.LogKeyTotal, total)

	if s.NewService == nil {
		s.NewService = gcal.NewService
	}

	// Step 1: authorization.
	s.setState(StateAuthorizing)
	if cancelled(ctx, sink) {
		return s.cancelledOutcome(Tally{}, log)
	}
	client, err := s.Auth.Authorize(ctx)
	if err != nil {
		return s.abort(err)
	}
	svc, err := s.NewService(ctx, client)
	if err != nil {
		return s.abort(err)
	}
	sink.Report(1, total)

	// Step 2: resolve or create the target calendar.
	s.setState(StateResolvingCalendar)
	if cancelled(ctx, sink) {
		return s.cancelledOutcome(Tally{}, log)
	}
	calendarID, err := ResolveCalendar(ctx, svc,
		s.Settings.CalendarName, s.Settings.TimeZone, s.Settings.ReminderMinutes)
	if err != nil {
		return s.abort(err)
	}
	sink.Report(2, total)

	// Step 3: read the existing-event directory.
	s.setState(StateReadingExisting)
	if cancelled(ctx, sink) {
		return s.cancelledOutcome(Tally{}, log)
	}
	existing, err := LoadExistingIdentities(ctx, svc, calendarID)
	if err != nil {
		return s.abort(err)
	}
	sink.Report(3, total)

	// Step 4: reconcile record by record.
	s.setState(StateExporting)
	rec := &Reconciler{
		Service:    svc,
		CalendarID: calendarID,
		ColorID:    s.Settings.ColorID,
		Format:     s.Format,
	}
	tally, err := rec.Run(ctx, records, existing, sink, config.ProgressOverheadSteps, total)
	if err != nil {
		if classified := classify(err); classified.Kind == KindCancelled {
			return s.cancelledOutcome(tally, log)
		}
		return s.abort(err)
	}

	s.setState(StateCompleted)
	log.Info(config.MsgSyncDone,
		config.LogKeyCreated, tally.Created,
		config.LogKeySkipped, tally.Skipped,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return Outcome{Created: tally.Created, Skipped: tally.Skipped}, nil
}

// cancelled checks both the context and the sink's cancel flag.
func cancelled(ctx context.Context, sink ProgressSink) bool {
	return ctx.Err() != nil || sink.Cancelled()
}

func (s *Session) cancelledOutcome(tally Tally, log *slog.Logger) (Outcome, error) {
	s.setState(StateAborted)
	log.Info(config.MsgSyncCancelled,
		config.LogKeyCreated, tally.Created,
		config.LogKeySkipped, tally.Skipped,
	)
	return Outcome{Created: tally.Created, Skipped: tally.Skipped, Cancelled: true}, nil
}

func (s *Session) abort(err error) (Outcome, error) {
	s.setState(StateAborted)
	return Outcome{}, classify(err)
}
