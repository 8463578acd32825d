package request

import (
	"context"

	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
)

// pendingRequest loads the request and enforces the shared precondition for
// every lifecycle action: the request must exist and still be pending.
func (s *Service) pendingRequest(ctx context.Context, requestID string) (request.Request, error) {
	item, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return request.Request{}, err
	}
	if item.Status != request.StatusPending {
		return request.Request{}, request.ErrRequestAlreadyProcessed
	}
	return item, nil
}

// authorize enforces the shared authorization rule: only the approver or the
// delegated processor may act on a request. Deliberately type-agnostic.
func authorize(actorID string, item request.Request) error {
	if actorID != item.ApproverID && actorID != item.ProcessorID {
		return request.ErrNotAuthorized
	}
	return nil
}
