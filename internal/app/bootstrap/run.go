// internal/app/bootstrap/run.go
package bootstrap

import (
	"context"
	"errors"
	"io"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/logging"
	"go.uber.org/zap"
)

// Run executes one terminal session: load and validate config, build the
// session, read commands from in until EOF, quit or interrupt, then shut
// down.
//
// It returns the number of commands that failed. An interrupted session is
// a normal end, not an error.
func Run(ctx context.Context, in io.Reader, out io.Writer) (int, error) {
	// Bootstrap logger until config says how to log.
	bootstrap := logging.BootstrapLogger()
	defer func() { _ = bootstrap.Sync() }()

	coreCfg, appCfg, err := LoadConfig(bootstrap)
	if err != nil {
		bootstrap.Error("config load failed", zap.Error(err))
		return 0, err
	}
	if err := ValidateConfig(coreCfg, appCfg, bootstrap); err != nil {
		bootstrap.Error("config validation failed", zap.Error(err))
		return 0, err
	}

	logger, err := buildLogger(coreCfg)
	if err != nil {
		bootstrap.Error("logger build failed", zap.Error(err))
		return 0, err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("logger initialized",
		zap.String("env", coreCfg.Env),
		zap.String("log_level", coreCfg.LogLevel))

	deps, err := Startup(ctx, coreCfg, appCfg, out, logger)
	if err != nil {
		return 0, err
	}

	failed, runErr := deps.Handler.Run(ctx, in)
	if errors.Is(runErr, context.Canceled) {
		logger.Info("session interrupted")
		runErr = nil
	}
	if err := Shutdown(context.Background(), coreCfg, appCfg, deps, logger); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	if runErr != nil {
		logger.Error("session ended with error", zap.Error(runErr))
	}
	logger.Info("hrflow session finished", zap.Int("failed_commands", failed))
	return failed, runErr
}

// buildLogger builds the session logger from WAFFLE's log_level and env:
// JSON output in prod, console output otherwise.
func buildLogger(coreCfg *config.CoreConfig) (*zap.Logger, error) {
	return logging.BuildLogger(coreCfg.LogLevel, coreCfg.Env)
}
