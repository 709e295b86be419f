// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds HRFlow-specific configuration.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig still
// carries framework-level settings such as the environment name and log
// level; AppConfig is everything specific to the workflow session.
type AppConfig struct {
	// Notification dispatch
	NotifyQueueSize   int           // pending notifications held before new ones are refused
	NotifySendTimeout time.Duration // deadline for a single send
	NotifyDelay       time.Duration // simulated WhatsApp latency of the log sender

	// Rendering
	Locale string // BCP 47 tag used for message and count formatting (e.g., en-US)

	// Audit logging
	AuditLogAdmin string // "all" (memory + log), "db" (memory only), "log", or "off"

	// CSV export
	ExportDir string // directory export files are written to
}
