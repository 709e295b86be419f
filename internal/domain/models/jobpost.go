// internal/domain/models/jobpost.go
package models

import "time"

// Job task status values.
const (
	JobTaskPending   = "Pending"
	JobTaskCompleted = "Completed"
)

// JobPost is a job listing handed to one or more interns to publish on
// recruiting platforms. Tasks holds one tracker entry per assigned intern,
// in assignment order.
type JobPost struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Platforms       []string  `json:"platforms"`
	Country         string    `json:"country"`
	AssignedInterns []string  `json:"assigned_interns"`
	WhatsAppAlert   bool      `json:"whatsapp_alert"`
	CreatedAt       time.Time `json:"created_at"`
	Tasks           []JobTask `json:"tasks"`
}

// JobTask is one intern's share of a job post. Evidence and SubmittedAt are
// set when the task is completed.
type JobTask struct {
	ID          string     `json:"id"`
	JobID       string     `json:"job_id"`
	InternID    string     `json:"intern_id"`
	Status      string     `json:"status"` // "Pending" | "Completed"
	Evidence    string     `json:"evidence,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}
