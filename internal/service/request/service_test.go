package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workforcehq/hr-workflow-go/internal/domain/employee"
	"github.com/workforcehq/hr-workflow-go/internal/domain/notification"
	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/validator"
)

var testDay = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func punch(hour, minute int) string {
	return time.Date(2026, 3, 16, hour, minute, 0, 0, time.UTC).Format(request.TimeLayout)
}

func createCheckIn(t *testing.T, h *harness, employeeID, clock, reason string) request.RequestResponse {
	t.Helper()
	resp, err := h.svc.CreateCheckIn(context.Background(), request.CreateCheckInRequest{
		EmployeeID:         employeeID,
		Title:              "Check in",
		UserReason:         reason,
		DesiredCheckInTime: clock,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateCheckIn_PendingWithManagerAsApprover(t *testing.T) {
	h := newHarness()

	resp := createCheckIn(t, h, "emp-1", punch(8, 0), "")

	assert.Equal(t, request.StatusPending, resp.Status)
	assert.Equal(t, "mgr-1", resp.ApproverID)
	assert.Equal(t, "mgr-1", resp.ProcessorID)

	note, ok := h.notes.lastOfType(notification.TypeRequestCreated)
	require.True(t, ok)
	assert.Equal(t, "mgr-1", note.RecipientID)
}

func TestCreateCheckIn_LateWithoutReason(t *testing.T) {
	h := newHarness()

	_, err := h.svc.CreateCheckIn(context.Background(), request.CreateCheckInRequest{
		EmployeeID:         "emp-1",
		Title:              "Check in",
		DesiredCheckInTime: punch(9, 30),
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "user_reason", errs[0].Field)
	assert.Contains(t, errs[0].Message, "08:00")
}

func TestCreateCheckIn_NoManagerAssigned(t *testing.T) {
	h := newHarness()

	_, err := h.svc.CreateCheckIn(context.Background(), request.CreateCheckInRequest{
		EmployeeID:         "mgr-1",
		Title:              "Check in",
		DesiredCheckInTime: punch(8, 0),
	})
	assert.ErrorIs(t, err, employee.ErrNoManagerAssigned)
}

func TestApprove_CheckInReconcilesLedger(t *testing.T) {
	h := newHarness()
	created := createCheckIn(t, h, "emp-1", punch(9, 30), "traffic jam")

	resp, err := h.svc.Approve(context.Background(), created.ID, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, resp.Status)
	require.NotNil(t, resp.ProcessedBy)
	assert.Equal(t, "mgr-1", *resp.ProcessedBy)

	entry, ok := h.sheets.get("emp-1", testDay)
	require.True(t, ok)
	require.NotNil(t, entry.CheckInTime)
	assert.Equal(t, "09:30", entry.CheckInTime.Format("15:04"))
	assert.Equal(t, 90, entry.LateMinutes)
	require.NotNil(t, entry.MorningStatus)
	assert.Equal(t, timesheet.StatusPresent, *entry.MorningStatus)
	assert.Nil(t, entry.AfternoonStatus)

	note, ok := h.notes.lastOfType(notification.TypeRequestApproved)
	require.True(t, ok)
	assert.Equal(t, "emp-1", note.RecipientID)
}

func TestApprove_CheckOutComputesDayCredit(t *testing.T) {
	h := newHarness()
	in := createCheckIn(t, h, "emp-1", punch(8, 0), "")
	_, err := h.svc.Approve(context.Background(), in.ID, "mgr-1")
	require.NoError(t, err)

	out, err := h.svc.CreateCheckOut(context.Background(), request.CreateCheckOutRequest{
		EmployeeID:          "emp-1",
		Title:               "Check out",
		DesiredCheckOutTime: punch(18, 0),
	})
	require.NoError(t, err)
	_, err = h.svc.Approve(context.Background(), out.ID, "mgr-1")
	require.NoError(t, err)

	entry, ok := h.sheets.get("emp-1", testDay)
	require.True(t, ok)
	require.NotNil(t, entry.CheckOutTime)
	assert.Equal(t, 0, entry.EarlyLeaveMinutes)
	assert.Equal(t, 60, entry.OvertimeMinutes)
	require.NotNil(t, entry.AfternoonStatus)
	assert.Equal(t, timesheet.StatusPresent, *entry.AfternoonStatus)
	// 08:00 to 18:00 is 600 minutes over a 540-minute reference day.
	assert.Equal(t, "1.111", entry.TotalWorkCredit.String())
}

func TestApprove_SecondCheckInSameDayFails(t *testing.T) {
	h := newHarness()
	first := createCheckIn(t, h, "emp-1", punch(8, 0), "")
	second := createCheckIn(t, h, "emp-1", punch(8, 30), "forgot to badge")

	_, err := h.svc.Approve(context.Background(), first.ID, "mgr-1")
	require.NoError(t, err)

	_, err = h.svc.Approve(context.Background(), second.ID, "mgr-1")
	assert.ErrorIs(t, err, timesheet.ErrAlreadyCheckedIn)
}

func TestApprove_UnauthorizedActorLeavesEverythingUntouched(t *testing.T) {
	h := newHarness()
	created := createCheckIn(t, h, "emp-1", punch(8, 0), "")

	_, err := h.svc.Approve(context.Background(), created.ID, "intruder")
	assert.ErrorIs(t, err, request.ErrNotAuthorized)

	stored, err := h.requests.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, stored.Status)
	assert.Empty(t, h.sheets.entries)
	assert.Equal(t, 0, h.tx.calls)
}

func TestApprove_TwiceFails(t *testing.T) {
	h := newHarness()
	created := createCheckIn(t, h, "emp-1", punch(8, 0), "")

	_, err := h.svc.Approve(context.Background(), created.ID, "mgr-1")
	require.NoError(t, err)

	_, err = h.svc.Approve(context.Background(), created.ID, "mgr-1")
	assert.ErrorIs(t, err, request.ErrRequestAlreadyProcessed)
}

func TestApprove_UnknownRequest(t *testing.T) {
	h := newHarness()

	_, err := h.svc.Approve(context.Background(), "missing", "mgr-1")
	assert.ErrorIs(t, err, request.ErrRequestNotFound)
}

func TestReject_NeverTouchesLedger(t *testing.T) {
	h := newHarness()
	created := createCheckIn(t, h, "emp-1", punch(8, 0), "")

	resp, err := h.svc.Reject(context.Background(), request.RejectRequestRequest{
		RequestID:    created.ID,
		ActorID:      "mgr-1",
		RejectReason: "badge record disagrees",
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejected, resp.Status)
	require.NotNil(t, resp.RejectReason)
	assert.Equal(t, "badge record disagrees", *resp.RejectReason)

	assert.Empty(t, h.sheets.entries)

	note, ok := h.notes.lastOfType(notification.TypeRequestRejected)
	require.True(t, ok)
	assert.Equal(t, "emp-1", note.RecipientID)
}

func TestReject_RequiresReason(t *testing.T) {
	h := newHarness()
	created := createCheckIn(t, h, "emp-1", punch(8, 0), "")

	_, err := h.svc.Reject(context.Background(), request.RejectRequestRequest{
		RequestID: created.ID,
		ActorID:   "mgr-1",
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "reject_reason", errs[0].Field)
}

func TestDelegate_ReassignsProcessorOnly(t *testing.T) {
	h := newHarness()
	created := createCheckIn(t, h, "emp-1", punch(8, 0), "")

	resp, err := h.svc.Delegate(context.Background(), request.DelegateRequestRequest{
		RequestID:      created.ID,
		NewProcessorID: "emp-2",
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, resp.Status)
	assert.Equal(t, "emp-2", resp.ProcessorID)
	assert.Equal(t, "mgr-1", resp.ApproverID)

	note, ok := h.notes.lastOfType(notification.TypeRequestDelegated)
	require.True(t, ok)
	assert.Equal(t, "emp-2", note.RecipientID)

	// The delegate can now act, and the original approver still can.
	_, err = h.svc.Approve(context.Background(), created.ID, "emp-2")
	require.NoError(t, err)
}

func TestDelegate_UnknownProcessor(t *testing.T) {
	h := newHarness()
	created := createCheckIn(t, h, "emp-1", punch(8, 0), "")

	_, err := h.svc.Delegate(context.Background(), request.DelegateRequestRequest{
		RequestID:      created.ID,
		NewProcessorID: "ghost",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListRequests_DefaultsAndPaging(t *testing.T) {
	h := newHarness()
	for i := 0; i < 3; i++ {
		createCheckIn(t, h, "emp-1", punch(8, 0), "")
	}

	resp, err := h.svc.ListRequests(context.Background(), request.RequestFilter{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Len(t, resp.Requests, 3)

	page2, err := h.svc.ListRequests(context.Background(), request.RequestFilter{
		EmployeeID: "emp-1",
		Page:       2,
		Limit:      2,
	})
	require.NoError(t, err)
	assert.Len(t, page2.Requests, 1)
	assert.Equal(t, 2, page2.TotalPages)
}
