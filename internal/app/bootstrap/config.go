// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/dalemusser/hrflow/internal/app/system/auditlog"
	"github.com/dalemusser/hrflow/internal/app/system/notify"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for HRFlow.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: notify_queue_size, locale, etc.
//   - Environment variables: HRFLOW_NOTIFY_QUEUE_SIZE, HRFLOW_LOCALE, etc.
//   - Command-line flags: --notify_queue_size, --locale, etc.
var appConfigKeys = []config.AppKey{
	// Notification dispatch
	{Name: "notify_queue_size", Default: 64, Desc: "Pending notification queue capacity"},
	{Name: "notify_send_timeout", Default: "5s", Desc: "Timeout for a single notification send (e.g., 5s, 1m)"},
	{Name: "notify_delay", Default: "500ms", Desc: "Simulated WhatsApp delivery latency"},

	// Rendering
	{Name: "locale", Default: "en-US", Desc: "Locale for notification messages and counts"},

	// Audit logging
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (memory+log), 'db' (memory only), 'log', or 'off'"},

	// CSV export
	{Name: "export_dir", Default: ".", Desc: "Directory for CSV exports"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, HRFLOW_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HRFLOW", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		NotifyQueueSize:   appValues.Int("notify_queue_size"),
		NotifySendTimeout: appValues.Duration("notify_send_timeout", 5*time.Second),
		NotifyDelay:       appValues.Duration("notify_delay", 500*time.Millisecond),
		Locale:            appValues.String("locale"),
		AuditLogAdmin:     appValues.String("audit_log_admin"),
		ExportDir:         appValues.String("export_dir"),
	}
	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.NotifyQueueSize < 1 {
		return fmt.Errorf("notify_queue_size must be at least 1, got %d", appCfg.NotifyQueueSize)
	}
	if appCfg.NotifySendTimeout < 0 {
		return fmt.Errorf("notify_send_timeout must not be negative, got %s", appCfg.NotifySendTimeout)
	}
	if appCfg.NotifyDelay < 0 {
		return fmt.Errorf("notify_delay must not be negative, got %s", appCfg.NotifyDelay)
	}
	if _, err := notify.ParseLocale(appCfg.Locale); err != nil {
		logger.Error("invalid locale", zap.String("locale", appCfg.Locale), zap.Error(err))
		return fmt.Errorf("invalid locale %q: %w", appCfg.Locale, err)
	}
	if appCfg.AuditLogAdmin != "" && !auditlog.ValidMode(appCfg.AuditLogAdmin) {
		return fmt.Errorf("audit_log_admin must be all, db, log or off, got %q", appCfg.AuditLogAdmin)
	}
	if appCfg.ExportDir != "" {
		fi, err := os.Stat(appCfg.ExportDir)
		if err != nil {
			return fmt.Errorf("export_dir: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("export_dir %q is not a directory", appCfg.ExportDir)
		}
	}
	return nil
}
