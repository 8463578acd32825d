package request

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workforcehq/hr-workflow-go/internal/domain/employee"
	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
)

func (s *Service) CreateLeave(ctx context.Context, req request.CreateLeaveRequest) (request.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return request.RequestResponse{}, err
	}

	today := dateOnly(time.Now().UTC())

	dates := make([]request.LeaveDate, 0, len(req.Dates))
	seen := make(map[string]struct{}, len(req.Dates))
	for _, input := range req.Dates {
		date, _ := time.Parse(request.DateLayout, input.Date)
		if date.Before(today) {
			return request.RequestResponse{}, request.ErrPastLeaveDate
		}
		if _, dup := seen[input.Date]; dup {
			return request.RequestResponse{}, request.ErrDuplicateLeaveDate
		}
		seen[input.Date] = struct{}{}
		dates = append(dates, request.LeaveDate{Date: date, Shift: input.Shift})
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Date.Before(dates[j].Date) })

	if workingDaysBetween(today, dates[0].Date) < s.policy.LeaveAdvanceNoticeDays {
		return request.RequestResponse{}, request.ErrInsufficientNotice
	}

	totalDays := decimal.Zero
	for _, d := range dates {
		totalDays = totalDays.Add(d.Shift.Days())
	}

	// The directory balance is authoritative but capped by policy.
	allowed := decimal.Min(emp.RemainingLeaveBalance, s.policy.MaxLeaveBalance)
	if totalDays.GreaterThan(allowed) {
		return request.RequestResponse{}, employee.ErrInsufficientLeaveBalance
	}

	if err := s.checkLeaveOverlap(ctx, emp.ID, dates); err != nil {
		return request.RequestResponse{}, err
	}

	item, err := s.newPendingRequest(request.TypeLeave, emp, req.Title, req.UserReason, req.AttachmentURL)
	if err != nil {
		return request.RequestResponse{}, err
	}
	item.Leave = &request.LeaveInfo{
		LeaveType: req.LeaveType,
		TotalDays: totalDays,
		Dates:     dates,
	}

	created, err := s.RequestRepository.Create(ctx, item)
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.notifyCreated(created)
	return request.ToResponse(created), nil
}

// checkLeaveOverlap rejects dates already claimed by the employee's other
// pending or approved leave requests. Cancelled and rejected requests free
// their dates for reuse.
func (s *Service) checkLeaveOverlap(ctx context.Context, employeeID string, dates []request.LeaveDate) error {
	others, err := s.RequestRepository.ListByEmployeeTypeStatuses(ctx, employeeID, request.TypeLeave,
		[]request.RequestStatus{request.StatusPending, request.StatusApproved})
	if err != nil {
		return fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	for _, other := range others {
		if other.Leave == nil {
			continue
		}
		for _, existing := range other.Leave.Dates {
			for _, d := range dates {
				if !existing.Date.Equal(d.Date) {
					continue
				}
				if shiftsOverlap(existing.Shift, d.Shift) {
					return request.ErrOverlappingLeave
				}
			}
		}
	}
	return nil
}

// shiftsOverlap reports whether two shifts on the same date share a slot.
func shiftsOverlap(a, b timesheet.Shift) bool {
	return a == timesheet.ShiftFullDay || b == timesheet.ShiftFullDay || a == b
}

// workingDaysBetween counts weekdays strictly after from and strictly before
// to. Weekends do not count toward advance notice.
func workingDaysBetween(from, to time.Time) int {
	days := 0
	for d := from.AddDate(0, 0, 1); d.Before(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days++
	}
	return days
}

func (s *Service) reconcileLeave(ctx context.Context, item request.Request) error {
	if item.Leave == nil {
		return fmt.Errorf("leave request %s has no payload", item.ID)
	}

	for _, d := range item.Leave.Dates {
		entry, err := s.TimesheetRepository.GetOrCreateForUpdate(ctx, item.EmployeeID, dateOnly(d.Date))
		if err != nil {
			return fmt.Errorf("failed to load timesheet for %s: %w", item.EmployeeID, err)
		}
		if entry.IsFinalized {
			return timesheet.ErrTimesheetFinalized
		}
		if timesheet.HasConflict(entry, d.Shift, timesheet.StatusLeave) {
			return timesheet.ErrShiftConflict
		}

		entry.SetShiftStatus(d.Shift, timesheet.StatusLeave)
		entry.SetWFH(d.Shift, false)
		entry.ClearTimes()
		entry.TotalWorkCredit = decimal.Zero

		if _, err := s.TimesheetRepository.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save timesheet: %w", err)
		}
	}

	// Same transaction as the ledger writes, so a rolled-back reconciliation
	// never leaves a dangling deduction.
	if err := s.EmployeeRepository.DeductLeaveBalance(ctx, item.EmployeeID, item.Leave.TotalDays); err != nil {
		return err
	}
	return nil
}
