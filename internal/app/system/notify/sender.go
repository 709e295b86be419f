// internal/app/system/notify/sender.go
package notify

import (
	"context"
	"time"

	"github.com/dalemusser/hrflow/internal/domain/models"
	"go.uber.org/zap"
)

// Sender delivers a single notification. The outcome is informational; a
// failed delivery never affects the state that triggered it.
type Sender interface {
	Send(ctx context.Context, n models.Notification) (models.NotificationOutcome, error)
}

// LogSender stands in for a WhatsApp integration. It waits for Delay to
// mimic network latency, then logs the message and reports it delivered.
type LogSender struct {
	Log   *zap.Logger
	Delay time.Duration
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *zap.Logger, delay time.Duration) *LogSender {
	return &LogSender{Log: logger, Delay: delay}
}

func (s *LogSender) Send(ctx context.Context, n models.Notification) (models.NotificationOutcome, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return models.NotificationFailed, ctx.Err()
		case <-t.C:
		}
	}
	s.Log.Info("whatsapp notification sent",
		zap.String("notification_id", n.ID),
		zap.String("type", string(n.Type)),
		zap.String("to", n.To),
		zap.Int("body_len", len(n.Body)))
	return models.NotificationDelivered, nil
}
