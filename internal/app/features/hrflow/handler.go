// internal/app/features/hrflow/handler.go
package hrflow

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dalemusser/hrflow/internal/app/store/interns"
	"github.com/dalemusser/hrflow/internal/app/store/jobposts"
	"github.com/dalemusser/hrflow/internal/app/store/workflowassign"
	"github.com/dalemusser/hrflow/internal/app/system/auditlog"
	"github.com/dalemusser/hrflow/internal/app/system/notify"
	"github.com/dalemusser/hrflow/internal/domain/models"
	"go.uber.org/zap"
)

// Handler is the terminal front end for the HR workflow screen. It turns
// command lines into store calls and renders the task and intern views.
//
// It is constructed once per session in bootstrap, the same way feature
// handlers receive their stores and logger.
type Handler struct {
	Store     *workflowassign.Store
	Jobs      *jobposts.Store
	Interns   *interns.Store
	Render    *notify.Renderer
	AuditLog  *auditlog.Logger
	Log       *zap.Logger
	ExportDir string
	Now       func() time.Time

	mu  sync.Mutex
	out io.Writer
}

// NewHandler constructs a Handler writing to out.
func NewHandler(store *workflowassign.Store, jobs *jobposts.Store, dir *interns.Store, render *notify.Renderer, audit *auditlog.Logger, exportDir string, out io.Writer, logger *zap.Logger) *Handler {
	return &Handler{
		Store:     store,
		Jobs:      jobs,
		Interns:   dir,
		Render:    render,
		AuditLog:  audit,
		Log:       logger,
		ExportDir: exportDir,
		Now:       time.Now,
		out:       out,
	}
}

// printf serializes writes; delivery outcomes arrive from the dispatcher
// goroutine.
func (h *Handler) printf(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.out, format, args...)
}

// NotificationOutcome reports a delivery result to the operator. It is
// registered with the dispatcher in bootstrap.
func (h *Handler) NotificationOutcome(n models.Notification, outcome models.NotificationOutcome, err error) {
	if outcome == models.NotificationDelivered {
		h.printf("WhatsApp sent to %s:\n\n%s\n\n", n.To, n.Body)
		return
	}
	h.printf("WhatsApp to %s failed: %v\n", n.To, err)
}

func (h *Handler) internName(id string) string {
	if in, ok := h.Interns.Get(id); ok {
		return in.Name
	}
	return id
}
