package timesheet

import (
	"context"
	"time"
)

// TimesheetRepository defines data access for daily timesheet entries.
// The ForUpdate variants must lock the (employee_id, work_date) row for the
// duration of the surrounding transaction so that two approvals touching the
// same day serialize their read-modify-write.
type TimesheetRepository interface {
	// GetOrCreateForUpdate returns the locked entry for the date, creating a
	// zeroed one first if none exists.
	GetOrCreateForUpdate(ctx context.Context, employeeID string, date time.Time) (DailyTimesheet, error)

	// GetForUpdate returns the locked entry, or ErrTimesheetNotFound if the
	// date has never been reconciled.
	GetForUpdate(ctx context.Context, employeeID string, date time.Time) (DailyTimesheet, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (DailyTimesheet, error)

	// Save upserts the entry keyed by (employee_id, work_date).
	Save(ctx context.Context, entry DailyTimesheet) (DailyTimesheet, error)

	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]DailyTimesheet, error)

	// FinalizeOlderThan marks every non-finalized entry dated strictly before
	// cutoff as finalized and returns the number of rows affected.
	FinalizeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
