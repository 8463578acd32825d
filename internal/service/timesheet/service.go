package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
)

// TimesheetServiceImpl serves the read-only ledger surface consumed by
// reporting callers. All writes go through the request approval handlers.
type TimesheetServiceImpl struct {
	timesheet.TimesheetRepository
}

func NewTimesheetService(repo timesheet.TimesheetRepository) *TimesheetServiceImpl {
	return &TimesheetServiceImpl{TimesheetRepository: repo}
}

func (s *TimesheetServiceImpl) ListTimesheets(ctx context.Context, req timesheet.ListTimesheetsRequest) ([]timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)

	entries, err := s.TimesheetRepository.ListByEmployee(ctx, req.EmployeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, timesheet.ToResponse(entry))
	}
	return responses, nil
}

func (s *TimesheetServiceImpl) GetTimesheet(ctx context.Context, employeeID, date string) (timesheet.TimesheetResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	entry, err := s.TimesheetRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return timesheet.ToResponse(entry), nil
}
