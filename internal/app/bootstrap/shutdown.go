// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown delivers any queued notifications and stops the dispatcher.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	if deps.Dispatcher != nil {
		logger.Info("stopping notification dispatcher")
		deps.Dispatcher.Stop()
	}
	return nil
}
