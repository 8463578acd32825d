package request

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
)

func createWFH(t *testing.T, h *harness, employeeID string, dates []request.RequestDateInput) request.RequestResponse {
	t.Helper()
	resp, err := h.svc.CreateWFH(context.Background(), request.CreateWFHRequest{
		EmployeeID:   employeeID,
		Title:        "Work from home",
		Commitment:   "available on all channels",
		WorkLocation: "home office",
		Dates:        dates,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateWFH_DateBounds(t *testing.T) {
	h := newHarness()

	_, err := h.svc.CreateWFH(context.Background(), request.CreateWFHRequest{
		EmployeeID:   "emp-1",
		Title:        "Work from home",
		WorkLocation: "home office",
		Dates:        []request.RequestDateInput{{Date: futureDate(0), Shift: timesheet.ShiftFullDay}},
	})
	assert.ErrorIs(t, err, request.ErrPastWFHDate)

	_, err = h.svc.CreateWFH(context.Background(), request.CreateWFHRequest{
		EmployeeID:   "emp-1",
		Title:        "Work from home",
		WorkLocation: "home office",
		Dates:        []request.RequestDateInput{{Date: futureDate(31), Shift: timesheet.ShiftFullDay}},
	})
	assert.ErrorIs(t, err, request.ErrWFHBeyondHorizon)

	date := futureDate(5)
	_, err = h.svc.CreateWFH(context.Background(), request.CreateWFHRequest{
		EmployeeID:   "emp-1",
		Title:        "Work from home",
		WorkLocation: "home office",
		Dates: []request.RequestDateInput{
			{Date: date, Shift: timesheet.ShiftMorning},
			{Date: date, Shift: timesheet.ShiftAfternoon},
		},
	})
	assert.ErrorIs(t, err, request.ErrDuplicateWFHDate)
}

func TestApprove_WFHBlockedByLeaveSlot(t *testing.T) {
	h := newHarness()
	date := futureDate(5)
	leave := timesheet.StatusLeave
	h.sheets.put(timesheet.DailyTimesheet{
		EmployeeID:    "emp-1",
		WorkDate:      mustDate(date),
		MorningStatus: &leave,
	})

	blocked := createWFH(t, h, "emp-1", []request.RequestDateInput{{Date: date, Shift: timesheet.ShiftMorning}})
	_, err := h.svc.Approve(context.Background(), blocked.ID, "mgr-1")
	assert.ErrorIs(t, err, timesheet.ErrShiftConflict)

	// The other half of the day is still free.
	allowed := createWFH(t, h, "emp-1", []request.RequestDateInput{{Date: date, Shift: timesheet.ShiftAfternoon}})
	_, err = h.svc.Approve(context.Background(), allowed.ID, "mgr-1")
	require.NoError(t, err)

	entry, ok := h.sheets.get("emp-1", mustDate(date))
	require.True(t, ok)
	assert.True(t, entry.AfternoonWFH)
	assert.False(t, entry.MorningWFH)
	require.NotNil(t, entry.AfternoonStatus)
	assert.Equal(t, timesheet.StatusPresent, *entry.AfternoonStatus)
	assert.Equal(t, "0.5", entry.TotalWorkCredit.String())
}

func TestApprove_WFHFullDay(t *testing.T) {
	h := newHarness()
	date := futureDate(5)
	created := createWFH(t, h, "emp-1", []request.RequestDateInput{{Date: date, Shift: timesheet.ShiftFullDay}})

	_, err := h.svc.Approve(context.Background(), created.ID, "mgr-1")
	require.NoError(t, err)

	entry, ok := h.sheets.get("emp-1", mustDate(date))
	require.True(t, ok)
	assert.True(t, entry.MorningWFH)
	assert.True(t, entry.AfternoonWFH)
	assert.Equal(t, "1", entry.TotalWorkCredit.String())
	assert.Equal(t, 0, entry.LateMinutes)
}

func TestApprove_HalfDayWFHAddsToPresentHalf(t *testing.T) {
	h := newHarness()
	date := futureDate(5)
	present := timesheet.StatusPresent
	h.sheets.put(timesheet.DailyTimesheet{
		EmployeeID:      "emp-1",
		WorkDate:        mustDate(date),
		MorningStatus:   &present,
		TotalWorkCredit: decimal.NewFromFloat(0.444),
	})

	created := createWFH(t, h, "emp-1", []request.RequestDateInput{{Date: date, Shift: timesheet.ShiftAfternoon}})
	_, err := h.svc.Approve(context.Background(), created.ID, "mgr-1")
	require.NoError(t, err)

	entry, ok := h.sheets.get("emp-1", mustDate(date))
	require.True(t, ok)
	assert.Equal(t, "0.944", entry.TotalWorkCredit.String())
}

func TestApprove_WFHOnFinalizedDayFails(t *testing.T) {
	h := newHarness()
	date := futureDate(5)
	h.sheets.put(timesheet.DailyTimesheet{
		EmployeeID:  "emp-1",
		WorkDate:    mustDate(date),
		IsFinalized: true,
	})

	created := createWFH(t, h, "emp-1", []request.RequestDateInput{{Date: date, Shift: timesheet.ShiftFullDay}})
	_, err := h.svc.Approve(context.Background(), created.ID, "mgr-1")
	assert.ErrorIs(t, err, timesheet.ErrTimesheetFinalized)
}
