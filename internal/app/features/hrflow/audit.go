// internal/app/features/hrflow/audit.go
package hrflow

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const defaultAuditLines = 10

// ShowAudit handles "audit [n]" and prints the last n recorded admin events.
// Nothing is recorded when audit_log_admin is "log" or "off".
func (h *Handler) ShowAudit(ctx context.Context, args []string) error {
	n := defaultAuditLines
	if len(args) > 1 {
		return usageErr("audit")
	}
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return usageErr("audit")
		}
		n = v
	}

	events, err := h.AuditLog.Recent(ctx, n)
	if err != nil {
		return fmt.Errorf("read audit events: %w", err)
	}
	if len(events) == 0 {
		h.printf("No audit events\n")
		return nil
	}

	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "%s  %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Action)
		if e.Resource != nil {
			fmt.Fprintf(&b, "  %s %s", e.Resource.Type, e.Resource.ID)
			if e.Resource.Name != "" {
				fmt.Fprintf(&b, " (%s)", e.Resource.Name)
			}
		}
		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s=%v", k, e.Metadata[k])
		}
		b.WriteString("\n")
	}
	h.printf("%s", b.String())
	return nil
}
