package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftStatus is the resolved state of a half-day slot. A nil status on the
// entity means the slot is still undetermined.
type ShiftStatus string

const (
	StatusPresent ShiftStatus = "present"
	StatusLeave   ShiftStatus = "leave"
)

// Shift identifies which slot(s) of a working day an operation targets.
type Shift string

const (
	ShiftFullDay   Shift = "full_day"
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
)

// Days returns the fractional-day weight of the shift.
func (s Shift) Days() decimal.Decimal {
	if s == ShiftFullDay {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(0.5)
}

func (s Shift) Valid() bool {
	switch s {
	case ShiftFullDay, ShiftMorning, ShiftAfternoon:
		return true
	}
	return false
}

// DailyTimesheet is the attendance ledger entry for one employee on one
// calendar date. (EmployeeID, WorkDate) is unique; entries are created lazily
// by the first approval touching the date and are never deleted.
type DailyTimesheet struct {
	ID         string
	EmployeeID string
	WorkDate   time.Time

	CheckInTime  *time.Time
	CheckOutTime *time.Time

	MorningStatus   *ShiftStatus
	AfternoonStatus *ShiftStatus
	MorningWFH      bool
	AfternoonWFH    bool

	LateMinutes       int
	EarlyLeaveMinutes int
	OvertimeMinutes   int
	TotalWorkCredit   decimal.Decimal

	IsFinalized bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	EmployeeName *string
}

// SetShiftStatus writes status into the slot(s) covered by shift.
func (t *DailyTimesheet) SetShiftStatus(shift Shift, status ShiftStatus) {
	s := status
	switch shift {
	case ShiftMorning:
		t.MorningStatus = &s
	case ShiftAfternoon:
		t.AfternoonStatus = &s
	case ShiftFullDay:
		m, a := status, status
		t.MorningStatus = &m
		t.AfternoonStatus = &a
	}
}

// SetWFH writes the work-from-home flag for the slot(s) covered by shift.
func (t *DailyTimesheet) SetWFH(shift Shift, wfh bool) {
	switch shift {
	case ShiftMorning:
		t.MorningWFH = wfh
	case ShiftAfternoon:
		t.AfternoonWFH = wfh
	case ShiftFullDay:
		t.MorningWFH = wfh
		t.AfternoonWFH = wfh
	}
}

// ClearTimes drops the punch times and every derived minute counter.
func (t *DailyTimesheet) ClearTimes() {
	t.CheckInTime = nil
	t.CheckOutTime = nil
	t.LateMinutes = 0
	t.EarlyLeaveMinutes = 0
	t.OvertimeMinutes = 0
}
