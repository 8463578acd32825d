package request

import (
	"context"
	"fmt"
	"time"

	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
)

// Approve validates, authorizes, reconciles the type-specific effect into the
// attendance ledger and transitions the request to approved, all inside one
// transaction. The "created → approved" notification goes out only after the
// transaction commits.
func (s *Service) Approve(ctx context.Context, requestID, actorID string) (request.RequestResponse, error) {
	item, err := s.pendingRequest(ctx, requestID)
	if err != nil {
		return request.RequestResponse{}, err
	}
	if err := authorize(actorID, item); err != nil {
		return request.RequestResponse{}, err
	}

	now := time.Now().UTC()
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.reconcile(txCtx, item); err != nil {
			return err
		}
		return s.RequestRepository.UpdateStatus(txCtx, request.StatusUpdate{
			ID:          item.ID,
			Status:      request.StatusApproved,
			ProcessedBy: actorID,
			ProcessedAt: now,
		})
	})
	if err != nil {
		return request.RequestResponse{}, err
	}

	item.Status = request.StatusApproved
	item.ProcessedBy = &actorID
	item.ProcessedAt = &now
	item.UpdatedAt = now

	s.notifyProcessed(item)
	return request.ToResponse(item), nil
}

// Reject transitions the request to rejected with the mandatory reason. It
// never touches the ledger or the leave balance.
func (s *Service) Reject(ctx context.Context, req request.RejectRequestRequest) (request.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	item, err := s.pendingRequest(ctx, req.RequestID)
	if err != nil {
		return request.RequestResponse{}, err
	}
	if err := authorize(req.ActorID, item); err != nil {
		return request.RequestResponse{}, err
	}

	now := time.Now().UTC()
	reason := req.RejectReason
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		return s.RequestRepository.UpdateStatus(txCtx, request.StatusUpdate{
			ID:           item.ID,
			Status:       request.StatusRejected,
			RejectReason: &reason,
			ProcessedBy:  req.ActorID,
			ProcessedAt:  now,
		})
	})
	if err != nil {
		return request.RequestResponse{}, err
	}

	item.Status = request.StatusRejected
	item.RejectReason = &reason
	item.ProcessedBy = &req.ActorID
	item.ProcessedAt = &now
	item.UpdatedAt = now

	s.notifyProcessed(item)
	return request.ToResponse(item), nil
}

// Delegate reassigns the processor of a pending request. The status does not
// change and the approver keeps their authority.
func (s *Service) Delegate(ctx context.Context, req request.DelegateRequestRequest) (request.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	item, err := s.pendingRequest(ctx, req.RequestID)
	if err != nil {
		return request.RequestResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.NewProcessorID); err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to resolve new processor: %w", err)
	}

	if err := s.RequestRepository.UpdateProcessor(ctx, item.ID, req.NewProcessorID); err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to reassign processor: %w", err)
	}

	item.ProcessorID = req.NewProcessorID
	s.notifyDelegated(item)
	return request.ToResponse(item), nil
}

// reconcile folds the approved request's effect into the attendance ledger.
// Dispatch is total over the known request types; an unknown type can only
// come from a bug, never from input, so it fails fast.
func (s *Service) reconcile(ctx context.Context, item request.Request) error {
	switch item.Type {
	case request.TypeCheckIn:
		return s.reconcileCheckIn(ctx, item)
	case request.TypeCheckOut:
		return s.reconcileCheckOut(ctx, item)
	case request.TypeLeave:
		return s.reconcileLeave(ctx, item)
	case request.TypeWFH:
		return s.reconcileWFH(ctx, item)
	case request.TypeTimesheet:
		return s.reconcileTimesheetUpdate(ctx, item)
	default:
		panic(fmt.Sprintf("unsupported request type %q", item.Type))
	}
}
