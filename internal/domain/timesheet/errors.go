package timesheet

import "errors"

// Timesheet domain errors
var (
	ErrTimesheetNotFound  = errors.New("timesheet entry not found")
	ErrTimesheetFinalized = errors.New("timesheet entry is finalized")
	ErrShiftConflict      = errors.New("shift already occupied by a conflicting status")
	ErrAlreadyCheckedIn   = errors.New("a check-in is already recorded for this date")
	ErrAlreadyCheckedOut  = errors.New("a check-out is already recorded for this date")
)
