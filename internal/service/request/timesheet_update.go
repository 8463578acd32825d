package request

import (
	"context"
	"fmt"
	"time"

	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/validator"
)

func (s *Service) CreateTimesheetUpdate(ctx context.Context, req request.CreateTimesheetUpdateRequest) (request.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	targetDate, _ := time.Parse(request.DateLayout, req.TargetDate)
	today := dateOnly(time.Now().UTC())
	windowStart := today.AddDate(0, 0, -s.policy.CorrectionWindowDays)
	if targetDate.Before(windowStart) || targetDate.After(today) {
		return request.RequestResponse{}, request.ErrCorrectionWindowClosed
	}

	var desiredIn, desiredOut *time.Time
	if req.DesiredCheckIn != nil {
		t, _ := time.Parse(request.TimeLayout, *req.DesiredCheckIn)
		if err := s.validateCorrectionTime("desired_check_in", t, targetDate); err != nil {
			return request.RequestResponse{}, err
		}
		desiredIn = &t
	}
	if req.DesiredCheckOut != nil {
		t, _ := time.Parse(request.TimeLayout, *req.DesiredCheckOut)
		if err := s.validateCorrectionTime("desired_check_out", t, targetDate); err != nil {
			return request.RequestResponse{}, err
		}
		desiredOut = &t
	}
	if desiredIn != nil && desiredOut != nil && !desiredIn.Before(*desiredOut) {
		return request.RequestResponse{}, request.ErrTimesOutOfOrder
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return request.RequestResponse{}, err
	}

	item, err := s.newPendingRequest(request.TypeTimesheet, emp, req.Title, req.UserReason, req.AttachmentURL)
	if err != nil {
		return request.RequestResponse{}, err
	}
	item.TimesheetUpdate = &request.TimesheetUpdateInfo{
		TargetDate:             targetDate,
		DesiredCheckIn:         desiredIn,
		DesiredCheckOut:        desiredOut,
		DesiredMorningStatus:   req.DesiredMorningStatus,
		DesiredAfternoonStatus: req.DesiredAfternoonStatus,
	}

	created, err := s.RequestRepository.Create(ctx, item)
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to create timesheet update request: %w", err)
	}

	s.notifyCreated(created)
	return request.ToResponse(created), nil
}

// validateCorrectionTime enforces that a corrected punch lands on the target
// date and inside the configured working window.
func (s *Service) validateCorrectionTime(field string, t, targetDate time.Time) error {
	if !dateOnly(t).Equal(targetDate) {
		return validator.ValidationErrors{{
			Field:   field,
			Message: field + " must fall on the target date",
		}}
	}
	if !s.calc.WithinWorkingWindow(t) {
		return request.ErrOutsideWorkingWindow
	}
	return nil
}

func (s *Service) reconcileTimesheetUpdate(ctx context.Context, item request.Request) error {
	if item.TimesheetUpdate == nil {
		return fmt.Errorf("timesheet update request %s has no payload", item.ID)
	}
	info := item.TimesheetUpdate

	// A correction targets an existing day; it never creates one.
	entry, err := s.TimesheetRepository.GetForUpdate(ctx, item.EmployeeID, dateOnly(info.TargetDate))
	if err != nil {
		return err
	}
	if entry.IsFinalized {
		return timesheet.ErrTimesheetFinalized
	}

	if info.DesiredCheckIn != nil {
		checkIn := *info.DesiredCheckIn
		entry.CheckInTime = &checkIn
	}
	if info.DesiredCheckOut != nil {
		checkOut := *info.DesiredCheckOut
		entry.CheckOutTime = &checkOut
	}

	// Recompute every derived metric from the corrected times.
	entry.LateMinutes = 0
	entry.EarlyLeaveMinutes = 0
	entry.OvertimeMinutes = 0
	if entry.CheckInTime != nil {
		entry.LateMinutes = s.calc.LateMinutes(*entry.CheckInTime)
		if s.calc.IsMorning(*entry.CheckInTime) {
			entry.SetShiftStatus(timesheet.ShiftMorning, timesheet.StatusPresent)
		}
	}
	if entry.CheckOutTime != nil {
		entry.EarlyLeaveMinutes = s.calc.EarlyLeaveMinutes(*entry.CheckOutTime)
		entry.OvertimeMinutes = s.calc.OvertimeMinutes(*entry.CheckOutTime)
		if s.calc.IsAfternoon(*entry.CheckOutTime) {
			entry.SetShiftStatus(timesheet.ShiftAfternoon, timesheet.StatusPresent)
		}
	}
	entry.TotalWorkCredit = s.calc.WorkCredit(entry.CheckInTime, entry.CheckOutTime)

	if info.DesiredMorningStatus != nil {
		status := *info.DesiredMorningStatus
		entry.MorningStatus = &status
	}
	if info.DesiredAfternoonStatus != nil {
		status := *info.DesiredAfternoonStatus
		entry.AfternoonStatus = &status
	}

	// A correction implies punch-based presence.
	entry.MorningWFH = false
	entry.AfternoonWFH = false

	if _, err := s.TimesheetRepository.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to save timesheet: %w", err)
	}
	return nil
}
