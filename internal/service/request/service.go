package request

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/workforcehq/hr-workflow-go/internal/config"
	"github.com/workforcehq/hr-workflow-go/internal/domain/employee"
	"github.com/workforcehq/hr-workflow-go/internal/domain/notification"
	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/database"
	timesheetcalc "github.com/workforcehq/hr-workflow-go/internal/service/timesheet"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// Service implements request.RequestService: the request lifecycle engine
// plus the reconciliation of approved requests into the attendance ledger.
type Service struct {
	tx database.TxManager
	request.RequestRepository
	timesheet.TimesheetRepository
	employee.EmployeeRepository
	notifier notification.Service
	calc     *timesheetcalc.Calculator
	policy   config.PolicyConfig
}

func NewRequestService(
	tx database.TxManager,
	requestRepo request.RequestRepository,
	timesheetRepo timesheet.TimesheetRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Service,
	calc *timesheetcalc.Calculator,
	policy config.PolicyConfig,
) *Service {
	return &Service{
		tx:                  tx,
		RequestRepository:   requestRepo,
		TimesheetRepository: timesheetRepo,
		EmployeeRepository:  employeeRepo,
		notifier:            notifier,
		calc:                calc,
		policy:              policy,
	}
}

// newPendingRequest builds the common shell of a request. The approver and
// processor both default to the employee's manager.
func (s *Service) newPendingRequest(typ request.RequestType, emp employee.Employee, title, reason string, attachment *string) (request.Request, error) {
	if emp.ManagerID == nil {
		return request.Request{}, employee.ErrNoManagerAssigned
	}
	now := time.Now().UTC()
	return request.Request{
		ID:            uuid.Must(uuid.NewV7()).String(),
		Type:          typ,
		Status:        request.StatusPending,
		EmployeeID:    emp.ID,
		ApproverID:    *emp.ManagerID,
		ProcessorID:   *emp.ManagerID,
		Title:         title,
		UserReason:    reason,
		AttachmentURL: attachment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (s *Service) GetRequest(ctx context.Context, requestID string) (request.RequestResponse, error) {
	item, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return request.RequestResponse{}, err
	}
	return request.ToResponse(item), nil
}

func (s *Service) ListRequests(ctx context.Context, filter request.RequestFilter) (request.ListRequestsResponse, error) {
	if filter.Page <= 0 {
		filter.Page = defaultPage
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	items, total, err := s.RequestRepository.List(ctx, filter)
	if err != nil {
		return request.ListRequestsResponse{}, fmt.Errorf("failed to list requests: %w", err)
	}

	responses := make([]request.RequestResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, request.ToResponse(item))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return request.ListRequestsResponse{
		Requests:   responses,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// dateOnly truncates a timestamp to its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
