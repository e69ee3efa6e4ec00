package sync

// ProgressSink receives determinate progress updates and exposes the user's
// cancellation request. The session calls Cancelled at every cooperative
// checkpoint: after authorization, after calendar resolution, after the
// existing-event read, and before each record during export.
type ProgressSink interface {
	// Report advances the progress indicator. step grows monotonically up
	// to total; total is fixed for the whole session.
	Report(step, total int)

	// Cancelled reports whether the user asked to stop.
	Cancelled() bool
}

// NopSink discards progress and never cancels. Useful for tests and
// non-interactive callers.
type NopSink struct{}

func (NopSink) Report(step, total int) {}
func (NopSink) Cancelled() bool        { return false }
