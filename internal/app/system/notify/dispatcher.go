// internal/app/system/notify/dispatcher.go
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/hrflow/internal/domain/models"
	"go.uber.org/zap"
)

// OutcomeFunc observes the result of each delivery attempt.
type OutcomeFunc func(n models.Notification, outcome models.NotificationOutcome, err error)

// Dispatcher is a background worker that hands queued notifications to a
// Sender one at a time. Enqueue never blocks: when the queue is full or the
// worker has stopped, the notification is reported as failed right away.
type Dispatcher struct {
	sender      Sender
	log         *zap.Logger
	sendTimeout time.Duration
	onOutcome   OutcomeFunc

	queue  chan models.Notification
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewDispatcher creates a dispatcher.
//
// Parameters:
//   - sender: delivers each notification
//   - logger: zap logger for delivery results
//   - queueSize: capacity of the pending queue (minimum 1)
//   - sendTimeout: per-send deadline; zero means no deadline
func NewDispatcher(sender Sender, logger *zap.Logger, queueSize int, sendTimeout time.Duration) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		sender:      sender,
		log:         logger,
		sendTimeout: sendTimeout,
		queue:       make(chan models.Notification, queueSize),
		stopCh:      make(chan struct{}),
	}
}

// OnOutcome registers fn to be called after every delivery attempt. It must
// be set before Start.
func (d *Dispatcher) OnOutcome(fn OutcomeFunc) {
	d.onOutcome = fn
}

// Start begins the delivery loop. It does nothing after Stop.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true
	d.wg.Add(1)
	go d.run()
	d.log.Info("notification dispatcher started", zap.Int("queue_size", cap(d.queue)))
}

// Stop refuses new notifications, delivers what is already queued and waits
// for the worker to finish. If the worker was never started, queued
// notifications are not sent; each is reported failed with
// ErrDispatcherStopped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	started := d.started
	close(d.stopCh)
	d.mu.Unlock()

	if started {
		d.wg.Wait()
	} else {
		d.discard()
	}
	d.log.Info("notification dispatcher stopped")
}

// discard empties the queue without sending.
func (d *Dispatcher) discard() {
	for {
		select {
		case n := <-d.queue:
			d.report(n, models.NotificationFailed, ErrDispatcherStopped)
		default:
			return
		}
	}
}

// Enqueue queues n for delivery and reports whether it was accepted.
func (d *Dispatcher) Enqueue(n models.Notification) bool {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		d.report(n, models.NotificationFailed, ErrDispatcherStopped)
		return false
	}
	select {
	case d.queue <- n:
		d.mu.Unlock()
		return true
	default:
		d.mu.Unlock()
		d.report(n, models.NotificationFailed, ErrQueueFull)
		return false
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case n := <-d.queue:
			d.deliver(n)
		case <-d.stopCh:
			for {
				select {
				case n := <-d.queue:
					d.deliver(n)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(n models.Notification) {
	ctx := context.Background()
	if d.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()
	}

	outcome, err := d.sender.Send(ctx, n)
	if err != nil {
		outcome = models.NotificationFailed
	}
	d.report(n, outcome, err)
}

func (d *Dispatcher) report(n models.Notification, outcome models.NotificationOutcome, err error) {
	if outcome == models.NotificationDelivered {
		d.log.Debug("notification delivered",
			zap.String("notification_id", n.ID),
			zap.String("to", n.To))
	} else {
		d.log.Warn("notification delivery failed",
			zap.String("notification_id", n.ID),
			zap.String("to", n.To),
			zap.Error(err))
	}
	if d.onOutcome != nil {
		d.onOutcome(n, outcome, err)
	}
}
