package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeRequestCreated   NotificationType = "request_created"
	TypeRequestApproved  NotificationType = "request_approved"
	TypeRequestRejected  NotificationType = "request_rejected"
	TypeRequestDelegated NotificationType = "request_delegated"
	TypeBulkApproval     NotificationType = "bulk_approval"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeRequestCreated,
		TypeRequestApproved,
		TypeRequestRejected,
		TypeRequestDelegated,
		TypeBulkApproval,
	}
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
