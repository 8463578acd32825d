package request

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
)

func (s *Service) CreateWFH(ctx context.Context, req request.CreateWFHRequest) (request.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return request.RequestResponse{}, err
	}

	today := dateOnly(time.Now().UTC())
	horizon := today.AddDate(0, 0, s.policy.WFHHorizonDays)

	dates := make([]request.WFHDate, 0, len(req.Dates))
	seen := make(map[string]struct{}, len(req.Dates))
	for _, input := range req.Dates {
		date, _ := time.Parse(request.DateLayout, input.Date)
		if !date.After(today) {
			return request.RequestResponse{}, request.ErrPastWFHDate
		}
		if date.After(horizon) {
			return request.RequestResponse{}, request.ErrWFHBeyondHorizon
		}
		if _, dup := seen[input.Date]; dup {
			return request.RequestResponse{}, request.ErrDuplicateWFHDate
		}
		seen[input.Date] = struct{}{}
		dates = append(dates, request.WFHDate{Date: date, Shift: input.Shift})
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Date.Before(dates[j].Date) })

	totalDays := decimal.Zero
	for _, d := range dates {
		totalDays = totalDays.Add(d.Shift.Days())
	}

	item, err := s.newPendingRequest(request.TypeWFH, emp, req.Title, req.UserReason, req.AttachmentURL)
	if err != nil {
		return request.RequestResponse{}, err
	}
	item.WFH = &request.WFHInfo{
		Commitment:   req.Commitment,
		WorkLocation: req.WorkLocation,
		TotalDays:    totalDays,
		Dates:        dates,
	}

	created, err := s.RequestRepository.Create(ctx, item)
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to create work-from-home request: %w", err)
	}

	s.notifyCreated(created)
	return request.ToResponse(created), nil
}

func (s *Service) reconcileWFH(ctx context.Context, item request.Request) error {
	if item.WFH == nil {
		return fmt.Errorf("work-from-home request %s has no payload", item.ID)
	}

	for _, d := range item.WFH.Dates {
		entry, err := s.TimesheetRepository.GetOrCreateForUpdate(ctx, item.EmployeeID, dateOnly(d.Date))
		if err != nil {
			return fmt.Errorf("failed to load timesheet for %s: %w", item.EmployeeID, err)
		}
		if entry.IsFinalized {
			return timesheet.ErrTimesheetFinalized
		}
		// WFH may coexist with an already-present opposite half but never
		// with a slot resolved to leave.
		if timesheet.HasConflict(entry, d.Shift, timesheet.StatusPresent) {
			return timesheet.ErrShiftConflict
		}

		entry.TotalWorkCredit = wfhCredit(entry, d.Shift)
		entry.SetShiftStatus(d.Shift, timesheet.StatusPresent)
		entry.SetWFH(d.Shift, true)
		// WFH has no punch times, so the punch-derived counters reset.
		entry.LateMinutes = 0
		entry.EarlyLeaveMinutes = 0
		entry.OvertimeMinutes = 0

		if _, err := s.TimesheetRepository.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save timesheet: %w", err)
		}
	}
	return nil
}

// wfhCredit computes the day's credit after granting WFH on the given shift.
// A half-day WFH next to an already-present opposite half adds its own 0.5
// instead of overwriting the day.
func wfhCredit(entry timesheet.DailyTimesheet, shift timesheet.Shift) decimal.Decimal {
	if shift == timesheet.ShiftFullDay {
		return timesheet.ShiftFullDay.Days()
	}

	opposite := entry.AfternoonStatus
	if shift == timesheet.ShiftAfternoon {
		opposite = entry.MorningStatus
	}
	if opposite != nil && *opposite == timesheet.StatusPresent {
		return entry.TotalWorkCredit.Add(shift.Days())
	}
	return shift.Days()
}
