package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/workforcehq/hr-workflow-go/internal/domain/employee"
	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/validator"
)

// BulkApprove drives the per-item approval flow over a bounded batch of
// pending requests. A domain failure for one item is recorded and the batch
// continues; a system failure (the store itself is unusable) aborts the rest.
// No item is retried: the first observed error is final for this run.
func (s *Service) BulkApprove(ctx context.Context, req request.BulkApproveRequest) (request.BulkApproveResult, error) {
	if err := req.Validate(); err != nil {
		return request.BulkApproveResult{}, err
	}

	filter := request.RequestFilter{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
	}
	pending, err := s.RequestRepository.ListPendingForApproval(ctx, req.ApproverID, filter, req.MaxRequests)
	if err != nil {
		return request.BulkApproveResult{}, fmt.Errorf("failed to list pending requests: %w", err)
	}

	result := request.BulkApproveResult{
		ApprovedIDs: []string{},
		Failures:    []request.BulkFailure{},
	}
	for _, item := range pending {
		_, err := s.Approve(ctx, item.ID, req.ApproverID)
		if err == nil {
			result.ApprovedIDs = append(result.ApprovedIDs, item.ID)
			continue
		}
		if !recoverable(err) {
			result.TotalProcessed = len(result.ApprovedIDs) + len(result.Failures)
			return result, err
		}
		name := item.EmployeeID
		if item.EmployeeName != nil {
			name = *item.EmployeeName
		}
		result.Failures = append(result.Failures, request.BulkFailure{
			RequestID:    item.ID,
			EmployeeName: name,
			Reason:       err.Error(),
		})
	}

	result.TotalProcessed = len(result.ApprovedIDs) + len(result.Failures)

	if result.TotalProcessed > 0 {
		s.notifier.Enqueue(bulkSummaryNotification(req.ApproverID, result))
	}
	return result, nil
}

// recoverable reports whether the error belongs to the domain taxonomy and
// may therefore be absorbed as a per-item failure. Anything else indicates
// the datastore or a collaborator is broken and must abort the batch.
func recoverable(err error) bool {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return true
	}

	for _, known := range []error{
		request.ErrRequestNotFound,
		request.ErrRequestAlreadyProcessed,
		request.ErrNotAuthorized,
		request.ErrOverlappingLeave,
		timesheet.ErrTimesheetNotFound,
		timesheet.ErrTimesheetFinalized,
		timesheet.ErrShiftConflict,
		timesheet.ErrAlreadyCheckedIn,
		timesheet.ErrAlreadyCheckedOut,
		employee.ErrEmployeeNotFound,
		employee.ErrNoManagerAssigned,
		employee.ErrInsufficientLeaveBalance,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
