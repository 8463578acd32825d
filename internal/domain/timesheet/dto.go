package timesheet

import (
	"github.com/shopspring/decimal"

	"github.com/workforcehq/hr-workflow-go/internal/pkg/validator"
)

// ListTimesheetsRequest filters an employee's ledger by date range.
type ListTimesheetsRequest struct {
	EmployeeID string
	From       string `json:"from"`
	To         string `json:"to"`
}

func (r *ListTimesheetsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a valid date (YYYY-MM-DD)",
		})
	}
	if _, ok := validator.IsValidDate(r.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TimesheetResponse is the read-only projection served to reporting callers.
type TimesheetResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      *string         `json:"employee_name,omitempty"`
	WorkDate          string          `json:"work_date"`
	CheckInTime       *string         `json:"check_in_time,omitempty"`
	CheckOutTime      *string         `json:"check_out_time,omitempty"`
	MorningStatus     *ShiftStatus    `json:"morning_status,omitempty"`
	AfternoonStatus   *ShiftStatus    `json:"afternoon_status,omitempty"`
	MorningWFH        bool            `json:"morning_wfh"`
	AfternoonWFH      bool            `json:"afternoon_wfh"`
	LateMinutes       int             `json:"late_minutes"`
	EarlyLeaveMinutes int             `json:"early_leave_minutes"`
	OvertimeMinutes   int             `json:"overtime_minutes"`
	TotalWorkCredit   decimal.Decimal `json:"total_work_credit"`
	IsFinalized       bool            `json:"is_finalized"`
}

// ToResponse converts an entity into its API projection.
func ToResponse(t DailyTimesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:                t.ID,
		EmployeeID:        t.EmployeeID,
		EmployeeName:      t.EmployeeName,
		WorkDate:          t.WorkDate.Format("2006-01-02"),
		MorningStatus:     t.MorningStatus,
		AfternoonStatus:   t.AfternoonStatus,
		MorningWFH:        t.MorningWFH,
		AfternoonWFH:      t.AfternoonWFH,
		LateMinutes:       t.LateMinutes,
		EarlyLeaveMinutes: t.EarlyLeaveMinutes,
		OvertimeMinutes:   t.OvertimeMinutes,
		TotalWorkCredit:   t.TotalWorkCredit,
		IsFinalized:       t.IsFinalized,
	}
	if t.CheckInTime != nil {
		s := t.CheckInTime.Format("2006-01-02 15:04:05")
		resp.CheckInTime = &s
	}
	if t.CheckOutTime != nil {
		s := t.CheckOutTime.Format("2006-01-02 15:04:05")
		resp.CheckOutTime = &s
	}
	return resp
}
