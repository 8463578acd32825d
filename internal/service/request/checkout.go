package request

import (
	"context"
	"fmt"
	"time"

	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/validator"
)

func (s *Service) CreateCheckOut(ctx context.Context, req request.CreateCheckOutRequest) (request.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	desired, _ := time.Parse(request.TimeLayout, req.DesiredCheckOutTime)

	// Leaving before the standard end of day must be explained.
	if s.calc.EarlyLeaveMinutes(desired) > 0 && validator.IsEmpty(req.UserReason) {
		return request.RequestResponse{}, validator.ValidationErrors{{
			Field:   "user_reason",
			Message: fmt.Sprintf("a reason is required when checking out before %s", s.calc.StandardCheckOutClock()),
		}}
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return request.RequestResponse{}, err
	}

	item, err := s.newPendingRequest(request.TypeCheckOut, emp, req.Title, req.UserReason, req.AttachmentURL)
	if err != nil {
		return request.RequestResponse{}, err
	}
	item.CheckOut = &request.CheckOutPayload{DesiredCheckOutTime: desired}

	created, err := s.RequestRepository.Create(ctx, item)
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to create check-out request: %w", err)
	}

	s.notifyCreated(created)
	return request.ToResponse(created), nil
}

func (s *Service) reconcileCheckOut(ctx context.Context, item request.Request) error {
	if item.CheckOut == nil {
		return fmt.Errorf("check-out request %s has no payload", item.ID)
	}
	desired := item.CheckOut.DesiredCheckOutTime

	entry, err := s.TimesheetRepository.GetOrCreateForUpdate(ctx, item.EmployeeID, dateOnly(desired))
	if err != nil {
		return fmt.Errorf("failed to load timesheet for %s: %w", item.EmployeeID, err)
	}
	if entry.IsFinalized {
		return timesheet.ErrTimesheetFinalized
	}
	if entry.CheckOutTime != nil {
		return timesheet.ErrAlreadyCheckedOut
	}
	if timesheet.HasConflict(entry, s.calc.PunchShift(desired), timesheet.StatusPresent) {
		return timesheet.ErrShiftConflict
	}

	checkOut := desired
	entry.CheckOutTime = &checkOut
	if s.calc.IsAfternoon(desired) {
		entry.SetShiftStatus(timesheet.ShiftAfternoon, timesheet.StatusPresent)
	}
	entry.EarlyLeaveMinutes = s.calc.EarlyLeaveMinutes(desired)
	entry.OvertimeMinutes = s.calc.OvertimeMinutes(desired)
	// Credit spans the whole day using the check-in already on record, even
	// when that check-in predates a later correction.
	entry.TotalWorkCredit = s.calc.WorkCredit(entry.CheckInTime, entry.CheckOutTime)

	if _, err := s.TimesheetRepository.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to save timesheet: %w", err)
	}
	return nil
}
