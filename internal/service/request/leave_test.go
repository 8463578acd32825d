package request

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforcehq/hr-workflow-go/internal/domain/employee"
	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
)

// futureDate returns today+offset formatted for request input. Offsets of two
// weeks or more always clear the three-working-day notice requirement.
func futureDate(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format(request.DateLayout)
}

func createLeave(t *testing.T, h *harness, employeeID string, dates []request.RequestDateInput) request.RequestResponse {
	t.Helper()
	resp, err := h.svc.CreateLeave(context.Background(), request.CreateLeaveRequest{
		EmployeeID: employeeID,
		Title:      "Annual leave",
		UserReason: "family trip",
		LeaveType:  "annual",
		Dates:      dates,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateLeave_RejectsPastDate(t *testing.T) {
	h := newHarness()

	_, err := h.svc.CreateLeave(context.Background(), request.CreateLeaveRequest{
		EmployeeID: "emp-1",
		Title:      "Annual leave",
		UserReason: "family trip",
		LeaveType:  "annual",
		Dates:      []request.RequestDateInput{{Date: futureDate(-1), Shift: timesheet.ShiftFullDay}},
	})
	assert.ErrorIs(t, err, request.ErrPastLeaveDate)
}

func TestCreateLeave_RejectsDuplicateDate(t *testing.T) {
	h := newHarness()
	date := futureDate(14)

	_, err := h.svc.CreateLeave(context.Background(), request.CreateLeaveRequest{
		EmployeeID: "emp-1",
		Title:      "Annual leave",
		UserReason: "family trip",
		LeaveType:  "annual",
		Dates: []request.RequestDateInput{
			{Date: date, Shift: timesheet.ShiftMorning},
			{Date: date, Shift: timesheet.ShiftAfternoon},
		},
	})
	require.ErrorIs(t, err, request.ErrDuplicateLeaveDate)
	assert.Equal(t, "Duplicate leave date", err.Error())
}

func TestCreateLeave_RejectsInsufficientNotice(t *testing.T) {
	h := newHarness()

	_, err := h.svc.CreateLeave(context.Background(), request.CreateLeaveRequest{
		EmployeeID: "emp-1",
		Title:      "Annual leave",
		UserReason: "family trip",
		LeaveType:  "annual",
		Dates:      []request.RequestDateInput{{Date: futureDate(1), Shift: timesheet.ShiftFullDay}},
	})
	assert.ErrorIs(t, err, request.ErrInsufficientNotice)
}

func TestCreateLeave_RejectsInsufficientBalance(t *testing.T) {
	h := newHarness()
	emp := h.employees.employees["emp-1"]
	emp.RemainingLeaveBalance = decimal.NewFromFloat(0.5)
	h.employees.employees["emp-1"] = emp

	_, err := h.svc.CreateLeave(context.Background(), request.CreateLeaveRequest{
		EmployeeID: "emp-1",
		Title:      "Annual leave",
		UserReason: "family trip",
		LeaveType:  "annual",
		Dates:      []request.RequestDateInput{{Date: futureDate(14), Shift: timesheet.ShiftFullDay}},
	})
	assert.ErrorIs(t, err, employee.ErrInsufficientLeaveBalance)
}

func TestCreateLeave_RejectsOverlapWithPendingLeave(t *testing.T) {
	h := newHarness()
	date := futureDate(14)
	createLeave(t, h, "emp-1", []request.RequestDateInput{{Date: date, Shift: timesheet.ShiftFullDay}})

	_, err := h.svc.CreateLeave(context.Background(), request.CreateLeaveRequest{
		EmployeeID: "emp-1",
		Title:      "Annual leave",
		UserReason: "family trip",
		LeaveType:  "annual",
		Dates:      []request.RequestDateInput{{Date: date, Shift: timesheet.ShiftMorning}},
	})
	assert.ErrorIs(t, err, request.ErrOverlappingLeave)
}

func TestCreateLeave_OppositeHalvesDoNotOverlap(t *testing.T) {
	h := newHarness()
	date := futureDate(14)
	createLeave(t, h, "emp-1", []request.RequestDateInput{{Date: date, Shift: timesheet.ShiftMorning}})

	createLeave(t, h, "emp-1", []request.RequestDateInput{{Date: date, Shift: timesheet.ShiftAfternoon}})
}

func TestApprove_LeaveDeductsExactlyTotalDays(t *testing.T) {
	h := newHarness()
	created := createLeave(t, h, "emp-1", []request.RequestDateInput{
		{Date: futureDate(14), Shift: timesheet.ShiftFullDay},
		{Date: futureDate(15), Shift: timesheet.ShiftMorning},
	})

	_, err := h.svc.Approve(context.Background(), created.ID, "mgr-1")
	require.NoError(t, err)

	emp := h.employees.employees["emp-1"]
	assert.Equal(t, "10.5", emp.RemainingLeaveBalance.String())

	full, ok := h.sheets.get("emp-1", mustDate(futureDate(14)))
	require.True(t, ok)
	assert.True(t, timesheet.IsFullDayLeave(full))
	assert.True(t, full.TotalWorkCredit.IsZero())

	half, ok := h.sheets.get("emp-1", mustDate(futureDate(15)))
	require.True(t, ok)
	require.NotNil(t, half.MorningStatus)
	assert.Equal(t, timesheet.StatusLeave, *half.MorningStatus)
	assert.Nil(t, half.AfternoonStatus)
}

func TestApprove_LeaveConflictBlocksApprovalAndDeduction(t *testing.T) {
	h := newHarness()
	date := futureDate(14)
	created := createLeave(t, h, "emp-1", []request.RequestDateInput{{Date: date, Shift: timesheet.ShiftMorning}})

	present := timesheet.StatusPresent
	h.sheets.put(timesheet.DailyTimesheet{
		EmployeeID:    "emp-1",
		WorkDate:      mustDate(date),
		MorningStatus: &present,
	})

	_, err := h.svc.Approve(context.Background(), created.ID, "mgr-1")
	assert.ErrorIs(t, err, timesheet.ErrShiftConflict)

	stored, err := h.requests.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, stored.Status)
	assert.Equal(t, "12", h.employees.employees["emp-1"].RemainingLeaveBalance.String())
}

func mustDate(s string) time.Time {
	d, err := time.Parse(request.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}
