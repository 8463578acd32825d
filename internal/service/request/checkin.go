package request

import (
	"context"
	"fmt"
	"time"

	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/validator"
)

func (s *Service) CreateCheckIn(ctx context.Context, req request.CreateCheckInRequest) (request.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	desired, _ := time.Parse(request.TimeLayout, req.DesiredCheckInTime)

	// A check-in past the standard start must be explained.
	if s.calc.LateMinutes(desired) > 0 && validator.IsEmpty(req.UserReason) {
		return request.RequestResponse{}, validator.ValidationErrors{{
			Field:   "user_reason",
			Message: fmt.Sprintf("a reason is required when checking in after %s", s.calc.StandardCheckInClock()),
		}}
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return request.RequestResponse{}, err
	}

	item, err := s.newPendingRequest(request.TypeCheckIn, emp, req.Title, req.UserReason, req.AttachmentURL)
	if err != nil {
		return request.RequestResponse{}, err
	}
	item.CheckIn = &request.CheckInPayload{DesiredCheckInTime: desired}

	created, err := s.RequestRepository.Create(ctx, item)
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to create check-in request: %w", err)
	}

	s.notifyCreated(created)
	return request.ToResponse(created), nil
}

func (s *Service) reconcileCheckIn(ctx context.Context, item request.Request) error {
	if item.CheckIn == nil {
		return fmt.Errorf("check-in request %s has no payload", item.ID)
	}
	desired := item.CheckIn.DesiredCheckInTime

	entry, err := s.TimesheetRepository.GetOrCreateForUpdate(ctx, item.EmployeeID, dateOnly(desired))
	if err != nil {
		return fmt.Errorf("failed to load timesheet for %s: %w", item.EmployeeID, err)
	}
	if entry.IsFinalized {
		return timesheet.ErrTimesheetFinalized
	}
	if entry.CheckInTime != nil {
		return timesheet.ErrAlreadyCheckedIn
	}
	if timesheet.HasConflict(entry, s.calc.PunchShift(desired), timesheet.StatusPresent) {
		return timesheet.ErrShiftConflict
	}

	checkIn := desired
	entry.CheckInTime = &checkIn
	if s.calc.IsMorning(desired) {
		entry.SetShiftStatus(timesheet.ShiftMorning, timesheet.StatusPresent)
	}
	entry.LateMinutes = s.calc.LateMinutes(desired)

	if _, err := s.TimesheetRepository.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to save timesheet: %w", err)
	}
	return nil
}
