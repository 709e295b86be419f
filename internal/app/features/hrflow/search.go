// internal/app/features/hrflow/search.go
package hrflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalemusser/hrflow/internal/app/store/interns"
)

// Search handles "search [query] [dept=<name>] [status=<status>]". The
// status value may use underscores for spaces ("status=In_Progress").
func (h *Handler) Search(ctx context.Context, args []string) error {
	var f interns.Filter
	var words []string
	for _, a := range args {
		switch {
		case strings.HasPrefix(strings.ToLower(a), "dept="):
			f.Department = strings.ReplaceAll(a[len("dept="):], "_", " ")
		case strings.HasPrefix(strings.ToLower(a), "status="):
			f.Status = strings.ReplaceAll(a[len("status="):], "_", " ")
		default:
			words = append(words, a)
		}
	}
	f.Query = strings.Join(words, " ")

	found := h.Interns.Search(f)
	if len(found) == 0 {
		h.printf("No interns found\n")
		return nil
	}
	var b strings.Builder
	for _, in := range found {
		fmt.Fprintf(&b, "[%s] %s  %s  %s  %s\n", in.ID, in.Name, in.Email, in.Department, in.OnboardingStatus)
	}
	fmt.Fprintf(&b, "%d of %d interns\n", len(found), h.Interns.Len())
	h.printf("%s", b.String())
	return nil
}
