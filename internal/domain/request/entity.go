package request

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
)

// RequestType is the closed set of workflow request kinds. Dispatch switches
// over this enum; an unknown value is a programming error, not input.
type RequestType string

const (
	TypeCheckIn   RequestType = "check_in"
	TypeCheckOut  RequestType = "check_out"
	TypeLeave     RequestType = "leave"
	TypeWFH       RequestType = "wfh"
	TypeTimesheet RequestType = "timesheet"
)

// AllRequestTypes returns every known request type.
func AllRequestTypes() []RequestType {
	return []RequestType{TypeCheckIn, TypeCheckOut, TypeLeave, TypeWFH, TypeTimesheet}
}

func (t RequestType) Valid() bool {
	switch t {
	case TypeCheckIn, TypeCheckOut, TypeLeave, TypeWFH, TypeTimesheet:
		return true
	}
	return false
}

type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusApproved   RequestStatus = "approved"
	StatusRejected   RequestStatus = "rejected"
	StatusCancelled  RequestStatus = "cancelled"
	StatusProcessing RequestStatus = "processing" // reserved for async flows
)

// transitions is the canonical lifecycle table. Approved, rejected and
// cancelled are terminal; processing is reserved and currently unreachable.
var transitions = map[RequestStatus][]RequestStatus{
	StatusPending: {StatusApproved, StatusRejected, StatusCancelled},
}

// CanTransition reports whether the lifecycle permits moving to the target
// status. Delegation is not a transition; it only reassigns the processor.
func (s RequestStatus) CanTransition(to RequestStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s RequestStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Request is one workflow item. Type is immutable after creation and exactly
// one payload field matching Type is non-nil. Payloads are owned by value;
// nothing holds a reference back to its parent request.
type Request struct {
	ID          string
	Type        RequestType
	Status      RequestStatus
	EmployeeID  string
	ApproverID  string
	ProcessorID string

	Title         string
	UserReason    string
	RejectReason  *string
	AttachmentURL *string

	ProcessedBy *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	CheckIn         *CheckInPayload
	CheckOut        *CheckOutPayload
	Leave           *LeaveInfo
	WFH             *WFHInfo
	TimesheetUpdate *TimesheetUpdateInfo

	// Joined for responses
	EmployeeName *string
}

type CheckInPayload struct {
	DesiredCheckInTime time.Time `json:"desired_check_in_time"`
}

type CheckOutPayload struct {
	DesiredCheckOutTime time.Time `json:"desired_check_out_time"`
}

// LeaveDate is one requested (date, shift) pair. Dates within a request are
// unique and ordered ascending.
type LeaveDate struct {
	Date  time.Time       `json:"date"`
	Shift timesheet.Shift `json:"shift"`
}

type LeaveInfo struct {
	LeaveType string          `json:"leave_type"`
	TotalDays decimal.Decimal `json:"total_days"`
	Dates     []LeaveDate     `json:"dates"`
}

type WFHDate struct {
	Date  time.Time       `json:"date"`
	Shift timesheet.Shift `json:"shift"`
}

type WFHInfo struct {
	Commitment   string          `json:"commitment"`
	WorkLocation string          `json:"work_location"`
	TotalDays    decimal.Decimal `json:"total_days"`
	Dates        []WFHDate       `json:"dates"`
}

// TimesheetUpdateInfo corrects an existing ledger entry. The desired WFH
// flags are carried for auditing but a correction always implies punch-based
// presence, so approval resets both flags to false.
type TimesheetUpdateInfo struct {
	TargetDate             time.Time              `json:"target_date"`
	DesiredCheckIn         *time.Time             `json:"desired_check_in,omitempty"`
	DesiredCheckOut        *time.Time             `json:"desired_check_out,omitempty"`
	DesiredMorningStatus   *timesheet.ShiftStatus `json:"desired_morning_status,omitempty"`
	DesiredAfternoonStatus *timesheet.ShiftStatus `json:"desired_afternoon_status,omitempty"`
	DesiredMorningWFH      bool                   `json:"desired_morning_wfh"`
	DesiredAfternoonWFH    bool                   `json:"desired_afternoon_wfh"`
}

// Payload is the JSONB envelope persisted alongside the request row. Exactly
// one field is set, matching the request type.
type Payload struct {
	CheckIn         *CheckInPayload      `json:"check_in,omitempty"`
	CheckOut        *CheckOutPayload     `json:"check_out,omitempty"`
	Leave           *LeaveInfo           `json:"leave,omitempty"`
	WFH             *WFHInfo             `json:"wfh,omitempty"`
	TimesheetUpdate *TimesheetUpdateInfo `json:"timesheet_update,omitempty"`
}

// Value implements driver.Valuer for database storage.
func (p Payload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for database retrieval.
func (p *Payload) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan request payload: invalid type")
	}
	return json.Unmarshal(bytes, p)
}

// Payload assembles the envelope from the request's payload field.
func (r Request) Payload() Payload {
	return Payload{
		CheckIn:         r.CheckIn,
		CheckOut:        r.CheckOut,
		Leave:           r.Leave,
		WFH:             r.WFH,
		TimesheetUpdate: r.TimesheetUpdate,
	}
}

// ApplyPayload copies the envelope back onto the request's payload fields.
func (r *Request) ApplyPayload(p Payload) {
	r.CheckIn = p.CheckIn
	r.CheckOut = p.CheckOut
	r.Leave = p.Leave
	r.WFH = p.WFH
	r.TimesheetUpdate = p.TimesheetUpdate
}
