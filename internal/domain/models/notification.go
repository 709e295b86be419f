// internal/domain/models/notification.go
package models

import "time"

// NotificationType classifies an outbound message.
type NotificationType string

const (
	NotificationWorkflowTask  NotificationType = "workflow_task"
	NotificationJobAssignment NotificationType = "job_assignment"
)

// NotificationOutcome is the observational result of a delivery attempt.
type NotificationOutcome string

const (
	NotificationDelivered NotificationOutcome = "delivered"
	NotificationFailed    NotificationOutcome = "failed"
)

// Notification is a single outbound message addressed to an intern.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	To        string           `json:"to"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
}
