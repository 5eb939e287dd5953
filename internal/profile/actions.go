package profile

import (
	"fmt"

	"github.com/candyhouse/talent-profile/internal/types"
)

// Action is a store transition. The set is closed: only the types in this file
// implement it.
type Action interface {
	fmt.Stringer
	action()
}

// ErrorRaised records a failure message and clears the busy flag.
type ErrorRaised struct {
	Message string
}

// BusyChanged sets the busy flag and clears any error.
type BusyChanged struct {
	Busy bool
}

// ResumeReceived merges a (possibly partial) resume into the state.
type ResumeReceived struct {
	Patch types.ResumePatch
}

func (ErrorRaised) action()    {}
func (BusyChanged) action()    {}
func (ResumeReceived) action() {}

func (a ErrorRaised) String() string { return fmt.Sprintf("onError(%q)", a.Message) }
func (a BusyChanged) String() string { return fmt.Sprintf("changeBusyState(%t)", a.Busy) }
func (ResumeReceived) String() string { return "onResumeGet" }

// Reduce returns the state that results from applying a to s. It never mutates s
// and the returned state shares no slices with it.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case ErrorRaised:
		next := s.Clone()
		next.IsBusy = false
		next.ErrorMessage = a.Message
		return next
	case BusyChanged:
		next := s.Clone()
		next.ErrorMessage = ""
		next.IsBusy = a.Busy
		return next
	case ResumeReceived:
		return State{
			Resume:       a.Patch.Apply(s.Resume),
			IsBusy:       false,
			ErrorMessage: "",
		}
	default:
		// unreachable: Action is sealed
		return s.Clone()
	}
}
