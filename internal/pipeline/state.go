package pipeline

import (
	"fmt"
)

// State is a point in a conversion run's lifecycle.
type State string

const (
	StateIdle             State = "idle"
	StateTranscoding      State = "transcoding"
	StateProbing          State = "probing"
	StateBuildingMetadata State = "building_metadata"
	StateMerging          State = "merging"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// Terminal reports whether no further transitions follow s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// StageError tags the first failure of a run with the stage it happened in.
// Stage is StateIdle for failures before any stage started.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
