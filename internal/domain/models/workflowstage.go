// internal/domain/models/workflowstage.go
package models

// WorkflowStage is one ordered step of the HR onboarding pipeline.
//
// Order is fixed when the pipeline is seeded. AssignedInterns holds intern
// IDs with set semantics: insertion order is kept for display but carries no
// meaning, and an ID never appears twice. An empty slice means the stage has
// nobody assigned.
type WorkflowStage struct {
	ID                string   `json:"id"`
	Order             int      `json:"order"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	EstimatedDuration string   `json:"estimated_duration"`
	AssignedInterns   []string `json:"assigned_interns"`
}
