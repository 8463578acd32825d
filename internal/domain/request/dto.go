package request

import (
	"time"

	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/validator"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "2006-01-02 15:04:05"
)

// ============= Create DTOs =============

type CreateCheckInRequest struct {
	EmployeeID         string  `json:"employee_id"`
	Title              string  `json:"title"`
	UserReason         string  `json:"user_reason"`
	AttachmentURL      *string `json:"attachment_url,omitempty"`
	DesiredCheckInTime string  `json:"desired_check_in_time"`
}

func (r *CreateCheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if !validator.IsValidDateTime(r.DesiredCheckInTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "desired_check_in_time",
			Message: "desired_check_in_time must be a valid timestamp (YYYY-MM-DD HH:MM:SS)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateCheckOutRequest struct {
	EmployeeID          string  `json:"employee_id"`
	Title               string  `json:"title"`
	UserReason          string  `json:"user_reason"`
	AttachmentURL       *string `json:"attachment_url,omitempty"`
	DesiredCheckOutTime string  `json:"desired_check_out_time"`
}

func (r *CreateCheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if !validator.IsValidDateTime(r.DesiredCheckOutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "desired_check_out_time",
			Message: "desired_check_out_time must be a valid timestamp (YYYY-MM-DD HH:MM:SS)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RequestDateInput is one (date, shift) pair as submitted by the caller.
type RequestDateInput struct {
	Date  string          `json:"date"`
	Shift timesheet.Shift `json:"shift"`
}

func validateDateInputs(field string, dates []RequestDateInput) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if len(dates) == 0 {
		errs = append(errs, validator.ValidationError{Field: field, Message: "at least one date is required"})
		return errs
	}
	for _, d := range dates {
		if _, ok := validator.IsValidDate(d.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "dates must be valid (YYYY-MM-DD)",
			})
			break
		}
	}
	for _, d := range dates {
		if !d.Shift.Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "shift must be one of full_day, morning, afternoon",
			})
			break
		}
	}
	return errs
}

type CreateLeaveRequest struct {
	EmployeeID    string             `json:"employee_id"`
	Title         string             `json:"title"`
	UserReason    string             `json:"user_reason"`
	AttachmentURL *string            `json:"attachment_url,omitempty"`
	LeaveType     string             `json:"leave_type"`
	Dates         []RequestDateInput `json:"dates"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if validator.IsEmpty(r.UserReason) {
		errs = append(errs, validator.ValidationError{Field: "user_reason", Message: "user_reason is required"})
	}
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type is required"})
	}
	errs = append(errs, validateDateInputs("dates", r.Dates)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateWFHRequest struct {
	EmployeeID    string             `json:"employee_id"`
	Title         string             `json:"title"`
	UserReason    string             `json:"user_reason"`
	AttachmentURL *string            `json:"attachment_url,omitempty"`
	Commitment    string             `json:"commitment"`
	WorkLocation  string             `json:"work_location"`
	Dates         []RequestDateInput `json:"dates"`
}

func (r *CreateWFHRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if validator.IsEmpty(r.WorkLocation) {
		errs = append(errs, validator.ValidationError{Field: "work_location", Message: "work_location is required"})
	}
	errs = append(errs, validateDateInputs("dates", r.Dates)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateTimesheetUpdateRequest struct {
	EmployeeID             string                 `json:"employee_id"`
	Title                  string                 `json:"title"`
	UserReason             string                 `json:"user_reason"`
	AttachmentURL          *string                `json:"attachment_url,omitempty"`
	TargetDate             string                 `json:"target_date"`
	DesiredCheckIn         *string                `json:"desired_check_in,omitempty"`
	DesiredCheckOut        *string                `json:"desired_check_out,omitempty"`
	DesiredMorningStatus   *timesheet.ShiftStatus `json:"desired_morning_status,omitempty"`
	DesiredAfternoonStatus *timesheet.ShiftStatus `json:"desired_afternoon_status,omitempty"`
}

func (r *CreateTimesheetUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if validator.IsEmpty(r.UserReason) {
		errs = append(errs, validator.ValidationError{Field: "user_reason", Message: "user_reason is required"})
	}
	if _, ok := validator.IsValidDate(r.TargetDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "target_date",
			Message: "target_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if r.DesiredCheckIn == nil && r.DesiredCheckOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "desired_check_in",
			Message: "at least one of desired_check_in or desired_check_out is required",
		})
	}
	if r.DesiredCheckIn != nil && !validator.IsValidDateTime(*r.DesiredCheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "desired_check_in",
			Message: "desired_check_in must be a valid timestamp (YYYY-MM-DD HH:MM:SS)",
		})
	}
	if r.DesiredCheckOut != nil && !validator.IsValidDateTime(*r.DesiredCheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "desired_check_out",
			Message: "desired_check_out must be a valid timestamp (YYYY-MM-DD HH:MM:SS)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ============= Action DTOs =============

type RejectRequestRequest struct {
	RequestID    string `json:"request_id"`
	ActorID      string `json:"-"`
	RejectReason string `json:"reject_reason"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "request_id is required"})
	}
	if validator.IsEmpty(r.RejectReason) {
		errs = append(errs, validator.ValidationError{Field: "reject_reason", Message: "reject_reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DelegateRequestRequest struct {
	RequestID      string `json:"request_id"`
	NewProcessorID string `json:"new_processor_id"`
}

func (r *DelegateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "request_id is required"})
	}
	if validator.IsEmpty(r.NewProcessorID) {
		errs = append(errs, validator.ValidationError{Field: "new_processor_id", Message: "new_processor_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ============= Filters =============

// RequestFilter selects requests for listing. Zero values mean "no filter".
type RequestFilter struct {
	EmployeeID string
	ApproverID string
	Status     RequestStatus
	Type       RequestType
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

// BulkApproveRequest bounds one batch run.
type BulkApproveRequest struct {
	ApproverID  string      `json:"-"`
	Type        RequestType `json:"type,omitempty"`
	EmployeeID  string      `json:"employee_id,omitempty"`
	MaxRequests int         `json:"max_requests"`
}

func (r *BulkApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApproverID) {
		errs = append(errs, validator.ValidationError{Field: "approver_id", Message: "approver_id is required"})
	}
	if r.MaxRequests <= 0 {
		errs = append(errs, validator.ValidationError{Field: "max_requests", Message: "max_requests must be greater than zero"})
	}
	if r.Type != "" && !r.Type.Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be a known request type"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ============= Status mutations =============

// StatusUpdate is the single-shot terminal transition write. ProcessedAt and
// ProcessedBy are set exactly once, at approval or rejection.
type StatusUpdate struct {
	ID           string
	Status       RequestStatus
	RejectReason *string
	ProcessedBy  string
	ProcessedAt  time.Time
}

// ============= Responses =============

type RequestResponse struct {
	ID            string        `json:"id"`
	Type          RequestType   `json:"type"`
	Status        RequestStatus `json:"status"`
	EmployeeID    string        `json:"employee_id"`
	EmployeeName  *string       `json:"employee_name,omitempty"`
	ApproverID    string        `json:"approver_id"`
	ProcessorID   string        `json:"processor_id"`
	Title         string        `json:"title"`
	UserReason    string        `json:"user_reason,omitempty"`
	RejectReason  *string       `json:"reject_reason,omitempty"`
	AttachmentURL *string       `json:"attachment_url,omitempty"`
	ProcessedBy   *string       `json:"processed_by,omitempty"`
	ProcessedAt   *time.Time    `json:"processed_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Payload Payload `json:"payload"`
}

// ToResponse converts an entity into its API projection.
func ToResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:            r.ID,
		Type:          r.Type,
		Status:        r.Status,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		ApproverID:    r.ApproverID,
		ProcessorID:   r.ProcessorID,
		Title:         r.Title,
		UserReason:    r.UserReason,
		RejectReason:  r.RejectReason,
		AttachmentURL: r.AttachmentURL,
		ProcessedBy:   r.ProcessedBy,
		ProcessedAt:   r.ProcessedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Payload:       r.Payload(),
	}
}

type ListRequestsResponse struct {
	Requests   []RequestResponse `json:"requests"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// BulkFailure records the first observed error for one request in a batch.
type BulkFailure struct {
	RequestID    string `json:"request_id"`
	EmployeeName string `json:"employee_name"`
	Reason       string `json:"reason"`
}

// BulkApproveResult reports per-item outcomes of one batch run.
// TotalProcessed always equals len(ApprovedIDs) + len(Failures).
type BulkApproveResult struct {
	TotalProcessed int           `json:"total_processed"`
	ApprovedIDs    []string      `json:"approved_ids"`
	Failures       []BulkFailure `json:"failures"`
}
