// internal/domain/models/intern.go
package models

import "time"

// Onboarding status values shown on intern profiles.
const (
	OnboardingPending    = "Pending"
	OnboardingInProgress = "In Progress"
	OnboardingCompleted  = "Completed"
)

// Intern is a read-only directory record. The workflow store references
// interns by ID only and never mutates these fields.
type Intern struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"` // notification address
	Department       string    `json:"department"`
	OnboardingStatus string    `json:"onboarding_status"` // "Pending" | "In Progress" | "Completed"
	JoinDate         time.Time `json:"join_date"`
}
