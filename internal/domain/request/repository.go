package request

import (
	"context"
)

// RequestRepository defines data access for workflow requests. Requests are
// soft-lifecycle only; there is no delete.
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID returns ErrRequestNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (Request, error)

	// UpdateStatus applies a terminal transition. It must only touch rows that
	// are still pending and return ErrRequestAlreadyProcessed otherwise, so a
	// racing second approval loses at the store.
	UpdateStatus(ctx context.Context, upd StatusUpdate) error

	// UpdateProcessor reassigns the delegate on a pending request.
	UpdateProcessor(ctx context.Context, id, processorID string) error

	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)

	// ListByEmployeeTypeStatuses returns the employee's requests of the given
	// type in any of the given statuses. Used for overlap checks at creation.
	ListByEmployeeTypeStatuses(ctx context.Context, employeeID string, typ RequestType, statuses []RequestStatus) ([]Request, error)

	// ListPendingForApproval returns up to limit pending requests the approver
	// may act on, oldest first.
	ListPendingForApproval(ctx context.Context, approverID string, filter RequestFilter, limit int) ([]Request, error)
}
