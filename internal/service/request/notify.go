package request

import (
	"fmt"

	"github.com/workforcehq/hr-workflow-go/internal/domain/notification"
	"github.com/workforcehq/hr-workflow-go/internal/domain/request"
)

func (s *Service) notifyCreated(item request.Request) {
	employeeID := item.EmployeeID
	s.notifier.Enqueue(notification.CreateNotificationRequest{
		RecipientID: item.ApproverID,
		SenderID:    &employeeID,
		Type:        notification.TypeRequestCreated,
		Title:       "New request awaiting approval",
		Message:     fmt.Sprintf("A %s request %q is waiting for your approval", item.Type, item.Title),
		Data: map[string]interface{}{
			"request_id":   item.ID,
			"request_type": string(item.Type),
		},
	})
}

func (s *Service) notifyProcessed(item request.Request) {
	typ := notification.TypeRequestApproved
	message := fmt.Sprintf("Your %s request %q has been approved", item.Type, item.Title)
	if item.Status == request.StatusRejected {
		typ = notification.TypeRequestRejected
		message = fmt.Sprintf("Your %s request %q has been rejected", item.Type, item.Title)
	}

	s.notifier.Enqueue(notification.CreateNotificationRequest{
		RecipientID: item.EmployeeID,
		SenderID:    item.ProcessedBy,
		Type:        typ,
		Title:       "Request " + string(item.Status),
		Message:     message,
		Data: map[string]interface{}{
			"request_id":   item.ID,
			"request_type": string(item.Type),
			"status":       string(item.Status),
		},
	})
}

func bulkSummaryNotification(approverID string, result request.BulkApproveResult) notification.CreateNotificationRequest {
	return notification.CreateNotificationRequest{
		RecipientID: approverID,
		Type:        notification.TypeBulkApproval,
		Title:       "Bulk approval finished",
		Message: fmt.Sprintf("Processed %d requests: %d approved, %d failed",
			result.TotalProcessed, len(result.ApprovedIDs), len(result.Failures)),
		Data: map[string]interface{}{
			"total_processed": result.TotalProcessed,
			"approved_count":  len(result.ApprovedIDs),
			"failed_count":    len(result.Failures),
		},
	}
}

func (s *Service) notifyDelegated(item request.Request) {
	s.notifier.Enqueue(notification.CreateNotificationRequest{
		RecipientID: item.ProcessorID,
		Type:        notification.TypeRequestDelegated,
		Title:       "Request delegated to you",
		Message:     fmt.Sprintf("A pending %s request %q has been delegated to you", item.Type, item.Title),
		Data: map[string]interface{}{
			"request_id":   item.ID,
			"request_type": string(item.Type),
		},
	})
}
