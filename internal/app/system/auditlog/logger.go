// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/pantry/audit"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event actions recorded for assignment changes.
const (
	ActionInternAssignedToStage     = "workflow.intern_assigned"
	ActionInternUnassignedFromStage = "workflow.intern_unassigned"
	ActionJobPostCreated            = "jobpost.created"
	ActionJobTaskCompleted          = "jobpost.task_completed"
)

// Config holds audit logging configuration.
type Config struct {
	// Admin controls logging for admin action events (stage assignments, job posts).
	// Values: "all" (memory + zap), "db" (memory only), "log" (zap only), "off" (disabled)
	Admin string
}

// ValidMode reports whether s is an accepted Config value.
func ValidMode(s string) bool {
	switch s {
	case "all", "db", "log", "off":
		return true
	}
	return false
}

// Logger records admin events to an audit.Store and to zap.
type Logger struct {
	store  audit.Store
	zapLog *zap.Logger
	config Config
	now    func() time.Time
}

// New creates a new audit Logger. An empty Admin setting means "all".
func New(store audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if config.Admin == "" {
		config.Admin = "all"
	}
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
		now:    time.Now,
	}
}

// operator is the actor for every event; the terminal session has one user.
var operator = &audit.Actor{ID: "console", Type: "operator", Name: "HR admin"}

func (l *Logger) logToZap(event *audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("event_id", event.ID),
		zap.String("action", event.Action),
		zap.String("outcome", string(event.Outcome)),
	}
	if event.Resource != nil {
		fields = append(fields,
			zap.String("resource_type", event.Resource.Type),
			zap.String("resource_id", event.Resource.ID))
	}
	for k, v := range event.Metadata {
		fields = append(fields, zap.String("detail_"+k, fmt.Sprint(v)))
	}
	l.zapLog.Info("audit event", fields...)
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event *audit.Event) {
	if l == nil || l.config.Admin == "off" {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now().UTC()
	}
	if event.Outcome == "" {
		event.Outcome = audit.OutcomeSuccess
	}
	if event.Actor == nil {
		event.Actor = operator
	}

	if l.config.Admin == "all" || l.config.Admin == "log" {
		l.logToZap(event)
	}
	if (l.config.Admin == "all" || l.config.Admin == "db") && l.store != nil {
		if err := l.store.Store(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("action", event.Action),
			)
		}
	}
}

// Recent returns up to limit stored events, oldest first.
func (l *Logger) Recent(ctx context.Context, limit int) ([]*audit.Event, error) {
	if l == nil || l.store == nil {
		return nil, nil
	}
	res, err := l.store.Query(ctx, &audit.Query{OrderBy: "timestamp"})
	if err != nil {
		return nil, err
	}
	events := res.Events
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}

// --- Assignment Events ---

// InternAssignedToStage logs a fresh stage assignment.
func (l *Logger) InternAssignedToStage(ctx context.Context, stageID, stageName, internID, internName string) {
	l.Log(ctx, &audit.Event{
		Action:   ActionInternAssignedToStage,
		Resource: &audit.Resource{ID: stageID, Type: "workflow_stage", Name: stageName},
		Metadata: map[string]any{
			"intern_id":   internID,
			"intern_name": internName,
		},
	})
}

// InternUnassignedFromStage logs the removal of a stage assignment.
func (l *Logger) InternUnassignedFromStage(ctx context.Context, stageID, stageName, internID, internName string) {
	l.Log(ctx, &audit.Event{
		Action:   ActionInternUnassignedFromStage,
		Resource: &audit.Resource{ID: stageID, Type: "workflow_stage", Name: stageName},
		Metadata: map[string]any{
			"intern_id":   internID,
			"intern_name": internName,
		},
	})
}

// --- Job Post Events ---

// JobPostCreated logs a new job post and how many interns it went to.
func (l *Logger) JobPostCreated(ctx context.Context, jobID, title string, internCount int) {
	l.Log(ctx, &audit.Event{
		Action:   ActionJobPostCreated,
		Resource: &audit.Resource{ID: jobID, Type: "job_post", Name: title},
		Metadata: map[string]any{
			"intern_count": internCount,
		},
	})
}

// JobTaskCompleted logs an intern's completed job task.
func (l *Logger) JobTaskCompleted(ctx context.Context, taskID, jobID, internID string) {
	l.Log(ctx, &audit.Event{
		Action:   ActionJobTaskCompleted,
		Resource: &audit.Resource{ID: taskID, Type: "job_task"},
		Metadata: map[string]any{
			"job_id":    jobID,
			"intern_id": internID,
		},
	})
}
