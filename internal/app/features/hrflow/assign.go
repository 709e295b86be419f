// internal/app/features/hrflow/assign.go
package hrflow

import (
	"context"

	"go.uber.org/zap"
)

// Toggle handles "toggle <stage-id> <intern-id>", the checkbox on the task view.
func (h *Handler) Toggle(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageErr("toggle")
	}
	stageID, internID := args[0], args[1]

	assigned, err := h.Store.ToggleAssignment(stageID, internID)
	if err != nil {
		return err
	}
	st, err := h.Store.Stage(stageID)
	if err != nil {
		return err
	}
	name := h.internName(internID)
	if assigned {
		h.AuditLog.InternAssignedToStage(ctx, st.ID, st.Name, internID, name)
		h.printf("Assigned %s to %d. %s\n", name, st.Order, st.Name)
	} else {
		h.AuditLog.InternUnassignedFromStage(ctx, st.ID, st.Name, internID, name)
		h.printf("Removed %s from %d. %s\n", name, st.Order, st.Name)
	}
	h.Log.Debug("toggle handled",
		zap.String("stage_id", stageID),
		zap.String("intern_id", internID),
		zap.Bool("assigned", assigned))
	return nil
}

// Unassign handles "unassign <stage-id> <intern-id>", the remove button on
// an assigned intern chip. Removing an intern who is not assigned prints the
// same line but records no audit event.
func (h *Handler) Unassign(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageErr("unassign")
	}
	stageID, internID := args[0], args[1]

	was, err := h.Store.IsAssigned(stageID, internID)
	if err != nil {
		return err
	}
	if err := h.Store.Unassign(stageID, internID); err != nil {
		return err
	}
	st, err := h.Store.Stage(stageID)
	if err != nil {
		return err
	}
	name := h.internName(internID)
	if was {
		h.AuditLog.InternUnassignedFromStage(ctx, st.ID, st.Name, internID, name)
	}
	h.printf("Removed %s from %d. %s\n", name, st.Order, st.Name)
	return nil
}
