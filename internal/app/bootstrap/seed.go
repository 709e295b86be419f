// internal/app/bootstrap/seed.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/hrflow/internal/domain/models"
)

// DefaultStages returns the HR onboarding pipeline every session starts
// with. Nobody is assigned initially.
func DefaultStages() []models.WorkflowStage {
	return []models.WorkflowStage{
		{ID: "1", Order: 1, Name: "Job Posting", Description: "Create and post job listings", EstimatedDuration: "2-3 hours", AssignedInterns: []string{}},
		{ID: "2", Order: 2, Name: "Interview Scheduling", Description: "Schedule interviews with candidates", EstimatedDuration: "1-2 hours", AssignedInterns: []string{}},
		{ID: "3", Order: 3, Name: "Recording Upload", Description: "Upload interview recordings", EstimatedDuration: "30 minutes", AssignedInterns: []string{}},
		{ID: "4", Order: 4, Name: "Selection", Description: "Review and select candidates", EstimatedDuration: "1-2 hours", AssignedInterns: []string{}},
		{ID: "5", Order: 5, Name: "Profile Creation", Description: "Create profiles for selected candidates", EstimatedDuration: "1 hour", AssignedInterns: []string{}},
		{ID: "6", Order: 6, Name: "Documentation", Description: "Upload required documents", EstimatedDuration: "30 minutes", AssignedInterns: []string{}},
		{ID: "7", Order: 7, Name: "Letter Generation", Description: "Generate offer letters", EstimatedDuration: "1 hour", AssignedInterns: []string{}},
		{ID: "8", Order: 8, Name: "Slack Invite", Description: "Send Slack invitations", EstimatedDuration: "15 minutes", AssignedInterns: []string{}},
	}
}

// DefaultInterns returns the intern directory used when no other source is
// configured.
func DefaultInterns() []models.Intern {
	return []models.Intern{
		{
			ID:               "1",
			Name:             "Alice Johnson",
			Email:            "alice@example.com",
			Phone:            "+1234567890",
			Department:       "Development",
			OnboardingStatus: models.OnboardingInProgress,
			JoinDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:               "2",
			Name:             "Bob Smith",
			Email:            "bob@example.com",
			Phone:            "+1234567891",
			Department:       "Design",
			OnboardingStatus: models.OnboardingCompleted,
			JoinDate:         time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:               "3",
			Name:             "Carol Davis",
			Email:            "carol@example.com",
			Phone:            "+1234567892",
			Department:       "Marketing",
			OnboardingStatus: models.OnboardingPending,
			JoinDate:         time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC),
		},
	}
}
