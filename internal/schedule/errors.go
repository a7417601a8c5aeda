package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotTaken means another active event already starts at the same minute.
	ErrSlotTaken = errors.New("time slot already taken")
	// ErrNothingToCopy means the source week has no events, even after rescanning.
	ErrNothingToCopy = errors.New("no events to copy in source week")
)

// CopyError reports a week copy aborted by a backend failure. Events copied
// before the failure stay in place; Result holds their counts.
type CopyError struct {
	Result CopyResult
	// IncompleteEventID is set when the event row was inserted but its
	// participants were not.
	IncompleteEventID int64
	Err               error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("week copy aborted after %d copied and %d conflicts: %v",
		e.Result.SuccessCount, e.Result.ConflictCount, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

const (
	StageLoad   = "load"
	StageDelete = "delete"
	StageInsert = "insert"
)

// RosterError reports a failed participant update. When Stage is
// StageInsert the deletions were already applied.
type RosterError struct {
	EventID int64
	Stage   string
	Err     error
}

func (e *RosterError) Error() string {
	return fmt.Sprintf("roster of event %d: %s failed: %v", e.EventID, e.Stage, e.Err)
}

func (e *RosterError) Unwrap() error {
	return e.Err
}

// DeletionsApplied reports whether the roster was left with removals but
// without the additions.
func (e *RosterError) DeletionsApplied() bool {
	return e.Stage == StageInsert
}
