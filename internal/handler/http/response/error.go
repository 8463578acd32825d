package response

import (
	"errors"
	"net/http"

	"github.com/workforcehq/hr-workflow-go/internal/domain/employee"
	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Request domain errors
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrRequestAlreadyProcessed):
		Conflict(w, "Request already processed")
	case errors.Is(err, request.ErrNotAuthorized):
		Forbidden(w, "Not authorized to act on this request")
	case errors.Is(err, request.ErrDuplicateLeaveDate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, request.ErrPastLeaveDate):
		BadRequest(w, "Leave dates must not be in the past", nil)
	case errors.Is(err, request.ErrOverlappingLeave):
		Conflict(w, "Leave dates overlap an existing request")
	case errors.Is(err, request.ErrInsufficientNotice):
		BadRequest(w, "Leave must be requested further in advance", nil)
	case errors.Is(err, request.ErrDuplicateWFHDate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, request.ErrPastWFHDate):
		BadRequest(w, "Work-from-home dates must be in the future", nil)
	case errors.Is(err, request.ErrWFHBeyondHorizon):
		BadRequest(w, "Work-from-home date is too far ahead", nil)
	case errors.Is(err, request.ErrCorrectionWindowClosed):
		BadRequest(w, "The correction window for this date has closed", nil)
	case errors.Is(err, request.ErrTimesOutOfOrder):
		BadRequest(w, "Check-in must be before check-out", nil)
	case errors.Is(err, request.ErrOutsideWorkingWindow):
		BadRequest(w, "Punch time is outside the working window", nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet entry not found")
	case errors.Is(err, timesheet.ErrTimesheetFinalized):
		Conflict(w, "Timesheet entry is finalized")
	case errors.Is(err, timesheet.ErrShiftConflict):
		Conflict(w, "The shift conflicts with the existing timesheet entry")
	case errors.Is(err, timesheet.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in on this date")
	case errors.Is(err, timesheet.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out on this date")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNoManagerAssigned):
		BadRequest(w, "Employee has no manager assigned", nil)
	case errors.Is(err, employee.ErrInsufficientLeaveBalance):
		BadRequest(w, "Insufficient leave balance", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
