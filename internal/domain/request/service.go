package request

import (
	"context"
)

type RequestService interface {
	// Creation, one entry point per type
	CreateCheckIn(ctx context.Context, req CreateCheckInRequest) (RequestResponse, error)
	CreateCheckOut(ctx context.Context, req CreateCheckOutRequest) (RequestResponse, error)
	CreateLeave(ctx context.Context, req CreateLeaveRequest) (RequestResponse, error)
	CreateWFH(ctx context.Context, req CreateWFHRequest) (RequestResponse, error)
	CreateTimesheetUpdate(ctx context.Context, req CreateTimesheetUpdateRequest) (RequestResponse, error)

	// Lifecycle actions
	Approve(ctx context.Context, requestID, actorID string) (RequestResponse, error)
	Reject(ctx context.Context, req RejectRequestRequest) (RequestResponse, error)
	Delegate(ctx context.Context, req DelegateRequestRequest) (RequestResponse, error)
	BulkApprove(ctx context.Context, req BulkApproveRequest) (BulkApproveResult, error)

	// Reads
	GetRequest(ctx context.Context, requestID string) (RequestResponse, error)
	ListRequests(ctx context.Context, filter RequestFilter) (ListRequestsResponse, error)
}
