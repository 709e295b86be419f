// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/dalemusser/hrflow/internal/app/features/hrflow"
	"github.com/dalemusser/hrflow/internal/app/store/interns"
	"github.com/dalemusser/hrflow/internal/app/store/jobposts"
	"github.com/dalemusser/hrflow/internal/app/store/workflowassign"
	"github.com/dalemusser/hrflow/internal/app/system/auditlog"
	"github.com/dalemusser/hrflow/internal/app/system/notify"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/audit"
	"go.uber.org/zap"
)

// auditMemoryEvents caps the in-memory audit trail of one session.
const auditMemoryEvents = 1000

// Startup builds the session: intern directory, notification dispatcher,
// workflow and job-post stores, audit logger and the terminal handler, in
// that order. The dispatcher is running when Startup returns; Shutdown
// stops it.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, out io.Writer, logger *zap.Logger) (Deps, error) {
	tag, err := notify.ParseLocale(appCfg.Locale)
	if err != nil {
		return Deps{}, fmt.Errorf("locale: %w", err)
	}
	render := notify.NewRenderer(tag)

	dir, err := interns.New(DefaultInterns())
	if err != nil {
		logger.Error("intern directory seed invalid", zap.Error(err))
		return Deps{}, err
	}

	sender := notify.NewLogSender(logger, appCfg.NotifyDelay)
	dispatcher := notify.NewDispatcher(sender, logger, appCfg.NotifyQueueSize, appCfg.NotifySendTimeout)

	store, err := workflowassign.New(DefaultStages(), workflowassign.Deps{
		Directory: dir,
		Notifier:  dispatcher,
		Renderer:  render,
		Log:       logger,
	})
	if err != nil {
		logger.Error("workflow pipeline seed invalid", zap.Error(err))
		return Deps{}, err
	}

	jobs, err := jobposts.New(jobposts.Deps{
		Directory: dir,
		Notifier:  dispatcher,
		Renderer:  render,
		Log:       logger,
	})
	if err != nil {
		return Deps{}, err
	}

	// Admin events are kept in memory for the "audit" command.
	auditLog := auditlog.New(audit.NewMemoryStore(auditMemoryEvents), logger, auditlog.Config{Admin: appCfg.AuditLogAdmin})

	h := hrflow.NewHandler(store, jobs, dir, render, auditLog, appCfg.ExportDir, out, logger)
	dispatcher.OnOutcome(h.NotificationOutcome)
	dispatcher.Start()

	logger.Info("hrflow session ready",
		zap.Int("stages", len(store.ViewByStage())),
		zap.Int("interns", dir.Len()),
		zap.String("locale", tag.String()))

	return Deps{
		Interns:    dir,
		Workflow:   store,
		Jobs:       jobs,
		AuditLog:   auditLog,
		Dispatcher: dispatcher,
		Handler:    h,
	}, nil
}
