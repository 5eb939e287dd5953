package profile

import (
	"context"
	"time"

	"github.com/candyhouse/talent-profile/internal/types"
)

// Outcome is the terminal state of one GetProfile or UpdateProfile invocation.
type Outcome int

const (
	// OutcomeSkipped means the last update was recent enough and nothing was dispatched.
	OutcomeSkipped Outcome = iota
	// OutcomeDone means the remote call succeeded and its data was merged.
	OutcomeDone
	// OutcomeFailed means the remote call failed and the error was recorded in the state.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDone:
		return "done"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsStale reports whether a profile last updated at lastUpdate should be refetched.
// A lastUpdate in the future counts as fresh.
func (s *Store) IsStale(lastUpdate time.Time) bool {
	return s.now().Sub(lastUpdate) >= s.staleAfter
}

// GetProfile refetches the profile unless lastUpdate is within the staleness window.
//
// A stale fetch dispatches BusyChanged{true}, then either ResumeReceived with the
// fetched data, or BusyChanged{false} followed by ErrorRaised with the failure text.
// Failures are recorded in the state and never returned.
func (s *Store) GetProfile(ctx context.Context, lastUpdate time.Time) Outcome {
	if !s.IsStale(lastUpdate) {
		return OutcomeSkipped
	}

	s.Dispatch(BusyChanged{Busy: true})

	patch, err := s.api.GetResume(ctx)
	if err != nil {
		s.fail(err)
		return OutcomeFailed
	}

	s.Dispatch(ResumeReceived{Patch: patch})
	return OutcomeDone
}

// GetProfileMillis is GetProfile with lastUpdate given in epoch milliseconds.
func (s *Store) GetProfileMillis(ctx context.Context, lastUpdateMillis int64) Outcome {
	return s.GetProfile(ctx, time.UnixMilli(lastUpdateMillis))
}

// UpdateProfile saves resume with replace-on-save semantics. On success the saved
// resume replaces every resume field of the state.
func (s *Store) UpdateProfile(ctx context.Context, resume types.Resume) Outcome {
	s.Dispatch(BusyChanged{Busy: true})

	if err := s.api.PutResume(ctx, resume.Clone()); err != nil {
		s.fail(err)
		return OutcomeFailed
	}

	s.Dispatch(ResumeReceived{Patch: types.FullPatch(resume)})
	return OutcomeDone
}

func (s *Store) fail(err error) {
	s.Dispatch(BusyChanged{Busy: false})
	s.Dispatch(ErrorRaised{Message: err.Error()})
}
