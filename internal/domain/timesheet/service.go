package timesheet

import "context"

type TimesheetService interface {
	ListTimesheets(ctx context.Context, req ListTimesheetsRequest) ([]TimesheetResponse, error)
	GetTimesheet(ctx context.Context, employeeID, date string) (TimesheetResponse, error)
}
