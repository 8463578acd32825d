package request

import "errors"

// Request domain errors
var (
	ErrRequestNotFound         = errors.New("request not found")
	ErrRequestAlreadyProcessed = errors.New("request has already been approved or rejected")
	ErrNotAuthorized           = errors.New("actor is neither approver nor processor of this request")

	// Leave rule errors
	ErrDuplicateLeaveDate = errors.New("Duplicate leave date")
	ErrPastLeaveDate      = errors.New("leave date cannot be in the past")
	ErrOverlappingLeave   = errors.New("leave dates overlap an existing pending or approved request")
	ErrInsufficientNotice = errors.New("leave request does not meet the advance notice requirement")

	// WFH rule errors
	ErrDuplicateWFHDate = errors.New("duplicate work-from-home date")
	ErrPastWFHDate      = errors.New("work-from-home date must be in the future")
	ErrWFHBeyondHorizon = errors.New("work-from-home date is beyond the allowed horizon")

	// Timesheet correction rule errors
	ErrCorrectionWindowClosed = errors.New("target date is outside the correction window")
	ErrTimesOutOfOrder        = errors.New("desired check-in must be before desired check-out")
	ErrOutsideWorkingWindow   = errors.New("desired time is outside the working window")
)
