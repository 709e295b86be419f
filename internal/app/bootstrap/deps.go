// internal/app/bootstrap/deps.go
package bootstrap

import (
	"github.com/dalemusser/hrflow/internal/app/features/hrflow"
	"github.com/dalemusser/hrflow/internal/app/store/interns"
	"github.com/dalemusser/hrflow/internal/app/store/jobposts"
	"github.com/dalemusser/hrflow/internal/app/store/workflowassign"
	"github.com/dalemusser/hrflow/internal/app/system/auditlog"
	"github.com/dalemusser/hrflow/internal/app/system/notify"
)

// Deps holds everything one session owns. There is no package-level state:
// each call to Startup builds a fresh set.
type Deps struct {
	Interns    *interns.Store
	Workflow   *workflowassign.Store
	Jobs       *jobposts.Store
	AuditLog   *auditlog.Logger
	Dispatcher *notify.Dispatcher
	Handler    *hrflow.Handler
}
