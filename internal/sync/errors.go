package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/pwalczyk/gcal-birthdays/internal/auth"
)

// Kind is the failure taxonomy surfaced at the session boundary. No raw
// transport error escapes a session without one of these attached.
type Kind int

const (
	// KindConfigurationMissing: required client configuration is absent;
	// the session aborts before any network call.
	KindConfigurationMissing Kind = iota + 1
	// KindAuthorizationFailed: consent denied or token invalid/unrefreshable.
	KindAuthorizationFailed
	// KindRemoteUnavailable: any network/API error during calendar
	// resolution, event listing, or event creation.
	KindRemoteUnavailable
	// KindCancelled: the user stopped the session. Reported with partial
	// counts, not as a failure.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindConfigurationMissing:
		return "configuration_missing"
	case KindAuthorizationFailed:
		return "authorization_failed"
	case KindRemoteUnavailable:
		return "remote_unavailable"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error carries a classified failure out of a session.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// classify wraps err with a Kind derived from its origin. Already-classified
// errors pass through unchanged.
func classify(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}

	var ae *auth.Error
	if errors.As(err, &ae) {
		kind := KindAuthorizationFailed
		if ae.Reason == auth.ReasonMissingClientConfig {
			kind = KindConfigurationMissing
		}
		return &Error{Kind: kind, Err: err}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindCancelled, Err: err}
	}

	return &Error{Kind: KindRemoteUnavailable, Err: err}
}
