// Package profile holds the client-side profile store: the current resume plus
// busy/error flags, the pure transitions that replace it, and the fetch/save
// orchestration that drives those transitions from the remote profile API.
package profile

import "github.com/candyhouse/talent-profile/internal/types"

// State is the resume flattened together with the UI status fields.
type State struct {
	types.Resume

	IsBusy       bool   `json:"isBusy"`
	ErrorMessage string `json:"errorMessage"`
}

// DefaultState is the state at session start: empty resume, not busy, no error.
func DefaultState() State {
	return State{Resume: types.EmptyResume()}
}

// Clone returns a copy sharing no slices with s.
func (s State) Clone() State {
	s.Resume = s.Resume.Clone()
	return s
}
