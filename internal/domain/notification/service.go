package notification

import (
	"context"
)

// Service delivers notifications. Enqueue is fire-and-forget: it never blocks
// the caller and delivery failure never propagates into the calling
// transaction.
type Service interface {
	Enqueue(req CreateNotificationRequest)
	List(ctx context.Context, req ListNotificationsRequest) (NotificationListResponse, error)
	MarkAsRead(ctx context.Context, recipientID string, ids []string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Shutdown()
}
