// internal/app/features/hrflow/views.go
package hrflow

import (
	"context"
	"fmt"
	"strings"
)

// ShowStages renders the task view.
func (h *Handler) ShowStages(ctx context.Context, args []string) error {
	var b strings.Builder
	for _, st := range h.Store.ViewByStage() {
		fmt.Fprintf(&b, "%d. %s [%s]  (%s)\n", st.Order, st.Name, st.ID, st.EstimatedDuration)
		if st.Description != "" {
			fmt.Fprintf(&b, "   %s\n", st.Description)
		}
		if len(st.Assigned) == 0 {
			b.WriteString("   No interns assigned\n")
			continue
		}
		names := make([]string, 0, len(st.Assigned))
		for _, a := range st.Assigned {
			names = append(names, fmt.Sprintf("%s [%s]", a.Name, a.ID))
		}
		fmt.Fprintf(&b, "   Assigned: %s\n", strings.Join(names, ", "))
	}
	h.printf("%s", b.String())
	return nil
}

// ShowInterns renders the intern view.
func (h *Handler) ShowInterns(ctx context.Context, args []string) error {
	var b strings.Builder
	for _, iv := range h.Store.ViewByIntern() {
		fmt.Fprintf(&b, "%s [%s]  %s  (%s)\n", iv.Name, iv.InternID, iv.Department, h.Render.TaskCount(iv.Count))
		if iv.Count == 0 {
			b.WriteString("   No assignments\n")
			continue
		}
		names := make([]string, 0, len(iv.Stages))
		for _, ref := range iv.Stages {
			names = append(names, ref.Name)
		}
		fmt.Fprintf(&b, "   %s\n", strings.Join(names, ", "))
	}
	h.printf("%s", b.String())
	return nil
}
