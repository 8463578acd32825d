package request

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workforcehq/hr-workflow-go/internal/config"
	"github.com/workforcehq/hr-workflow-go/internal/domain/employee"
	"github.com/workforcehq/hr-workflow-go/internal/domain/notification"
	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
	timesheetcalc "github.com/workforcehq/hr-workflow-go/internal/service/timesheet"
)

// The fakes below implement the domain repository interfaces in memory so the
// service logic can be exercised without a database. The transaction manager
// is pass-through; tests that care about atomicity arrange for the failing
// step to come first.

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeRequestRepo struct {
	items map[string]request.Request
	order []string
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{items: make(map[string]request.Request)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, req request.Request) (request.Request, error) {
	f.items[req.ID] = req
	f.order = append(f.order, req.ID)
	return req, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (request.Request, error) {
	item, ok := f.items[id]
	if !ok {
		return request.Request{}, request.ErrRequestNotFound
	}
	return item, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, upd request.StatusUpdate) error {
	item, ok := f.items[upd.ID]
	if !ok || item.Status != request.StatusPending {
		return request.ErrRequestAlreadyProcessed
	}
	now := upd.ProcessedAt
	item.Status = upd.Status
	item.RejectReason = upd.RejectReason
	item.ProcessedBy = &upd.ProcessedBy
	item.ProcessedAt = &now
	item.UpdatedAt = now
	f.items[upd.ID] = item
	return nil
}

func (f *fakeRequestRepo) UpdateProcessor(ctx context.Context, id, processorID string) error {
	item, ok := f.items[id]
	if !ok {
		return request.ErrRequestNotFound
	}
	item.ProcessorID = processorID
	f.items[id] = item
	return nil
}

func (f *fakeRequestRepo) List(ctx context.Context, filter request.RequestFilter) ([]request.Request, int64, error) {
	var matched []request.Request
	for _, id := range f.order {
		item := f.items[id]
		if filter.EmployeeID != "" && item.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Type != "" && item.Type != filter.Type {
			continue
		}
		matched = append(matched, item)
	}
	total := int64(len(matched))

	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeRequestRepo) ListByEmployeeTypeStatuses(ctx context.Context, employeeID string, typ request.RequestType, statuses []request.RequestStatus) ([]request.Request, error) {
	var matched []request.Request
	for _, id := range f.order {
		item := f.items[id]
		if item.EmployeeID != employeeID || item.Type != typ {
			continue
		}
		for _, status := range statuses {
			if item.Status == status {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched, nil
}

func (f *fakeRequestRepo) ListPendingForApproval(ctx context.Context, approverID string, filter request.RequestFilter, limit int) ([]request.Request, error) {
	var matched []request.Request
	for _, id := range f.order {
		item := f.items[id]
		if item.Status != request.StatusPending {
			continue
		}
		if item.ApproverID != approverID && item.ProcessorID != approverID {
			continue
		}
		if filter.Type != "" && item.Type != filter.Type {
			continue
		}
		if filter.EmployeeID != "" && item.EmployeeID != filter.EmployeeID {
			continue
		}
		matched = append(matched, item)
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

type fakeTimesheetRepo struct {
	entries map[string]timesheet.DailyTimesheet
	seq     int

	// failFor simulates a datastore failure for one employee.
	failFor string
}

func newFakeTimesheetRepo() *fakeTimesheetRepo {
	return &fakeTimesheetRepo{entries: make(map[string]timesheet.DailyTimesheet)}
}

func sheetKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format(request.DateLayout)
}

func (f *fakeTimesheetRepo) put(entry timesheet.DailyTimesheet) {
	if entry.ID == "" {
		f.seq++
		entry.ID = fmt.Sprintf("ts-%d", f.seq)
	}
	f.entries[sheetKey(entry.EmployeeID, entry.WorkDate)] = entry
}

func (f *fakeTimesheetRepo) get(employeeID string, date time.Time) (timesheet.DailyTimesheet, bool) {
	entry, ok := f.entries[sheetKey(employeeID, date)]
	return entry, ok
}

func (f *fakeTimesheetRepo) GetOrCreateForUpdate(ctx context.Context, employeeID string, date time.Time) (timesheet.DailyTimesheet, error) {
	if employeeID == f.failFor {
		return timesheet.DailyTimesheet{}, fmt.Errorf("connection reset")
	}
	if entry, ok := f.get(employeeID, date); ok {
		return entry, nil
	}
	f.seq++
	entry := timesheet.DailyTimesheet{
		ID:              fmt.Sprintf("ts-%d", f.seq),
		EmployeeID:      employeeID,
		WorkDate:        date,
		TotalWorkCredit: decimal.Zero,
	}
	f.entries[sheetKey(employeeID, date)] = entry
	return entry, nil
}

func (f *fakeTimesheetRepo) GetForUpdate(ctx context.Context, employeeID string, date time.Time) (timesheet.DailyTimesheet, error) {
	entry, ok := f.get(employeeID, date)
	if !ok {
		return timesheet.DailyTimesheet{}, timesheet.ErrTimesheetNotFound
	}
	return entry, nil
}

func (f *fakeTimesheetRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (timesheet.DailyTimesheet, error) {
	return f.GetForUpdate(ctx, employeeID, date)
}

func (f *fakeTimesheetRepo) Save(ctx context.Context, entry timesheet.DailyTimesheet) (timesheet.DailyTimesheet, error) {
	f.entries[sheetKey(entry.EmployeeID, entry.WorkDate)] = entry
	return entry, nil
}

func (f *fakeTimesheetRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.DailyTimesheet, error) {
	var matched []timesheet.DailyTimesheet
	for _, entry := range f.entries {
		if entry.EmployeeID != employeeID {
			continue
		}
		if entry.WorkDate.Before(from) || entry.WorkDate.After(to) {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, nil
}

func (f *fakeTimesheetRepo) FinalizeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	for key, entry := range f.entries {
		if !entry.IsFinalized && entry.WorkDate.Before(cutoff) {
			entry.IsFinalized = true
			f.entries[key] = entry
			count++
		}
	}
	return count, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) DeductLeaveBalance(ctx context.Context, id string, days decimal.Decimal) error {
	emp, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if emp.RemainingLeaveBalance.LessThan(days) {
		return employee.ErrInsufficientLeaveBalance
	}
	emp.RemainingLeaveBalance = emp.RemainingLeaveBalance.Sub(days)
	f.employees[id] = emp
	return nil
}

type fakeNotifier struct {
	sent []notification.CreateNotificationRequest
}

func (f *fakeNotifier) Enqueue(req notification.CreateNotificationRequest) {
	f.sent = append(f.sent, req)
}

func (f *fakeNotifier) List(ctx context.Context, req notification.ListNotificationsRequest) (notification.NotificationListResponse, error) {
	return notification.NotificationListResponse{}, nil
}

func (f *fakeNotifier) MarkAsRead(ctx context.Context, recipientID string, ids []string) error {
	return nil
}

func (f *fakeNotifier) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return nil
}

func (f *fakeNotifier) Shutdown() {}

func (f *fakeNotifier) lastOfType(typ notification.NotificationType) (notification.CreateNotificationRequest, bool) {
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].Type == typ {
			return f.sent[i], true
		}
	}
	return notification.CreateNotificationRequest{}, false
}

// harness bundles a service wired to fresh fakes plus the fakes themselves so
// tests can seed and inspect state directly.
type harness struct {
	svc       *Service
	tx        *fakeTxManager
	requests  *fakeRequestRepo
	sheets    *fakeTimesheetRepo
	employees *fakeEmployeeRepo
	notes     *fakeNotifier
}

func testPolicy() config.PolicyConfig {
	return config.PolicyConfig{
		LeaveAdvanceNoticeDays: 3,
		MaxLeaveBalance:        decimal.NewFromInt(12),
		WFHHorizonDays:         30,
		CorrectionWindowDays:   7,
		FinalizeAfterDays:      30,
	}
}

func testWorkday() config.WorkdayConfig {
	return config.WorkdayConfig{
		StandardCheckIn:  "08:00",
		StandardCheckOut: "17:00",
		ShiftBoundary:    "12:00",
		WindowStart:      "06:00",
		WindowEnd:        "22:00",
		WorkdayMinutes:   540,
	}
}

func newHarness() *harness {
	h := &harness{
		tx:        &fakeTxManager{},
		requests:  newFakeRequestRepo(),
		sheets:    newFakeTimesheetRepo(),
		employees: newFakeEmployeeRepo(),
		notes:     &fakeNotifier{},
	}
	h.svc = NewRequestService(
		h.tx,
		h.requests,
		h.sheets,
		h.employees,
		h.notes,
		timesheetcalc.NewCalculator(testWorkday()),
		testPolicy(),
	)

	managerID := "mgr-1"
	h.employees.employees[managerID] = employee.Employee{
		ID:                    managerID,
		FullName:              "Maya Manager",
		RemainingLeaveBalance: decimal.NewFromInt(12),
	}
	for _, id := range []string{"emp-1", "emp-2", "emp-3"} {
		mgr := managerID
		h.employees.employees[id] = employee.Employee{
			ID:                    id,
			FullName:              "Employee " + id,
			ManagerID:             &mgr,
			RemainingLeaveBalance: decimal.NewFromInt(12),
		}
	}
	return h
}

func strPtr(s string) *string {
	return &s
}
