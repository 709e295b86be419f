// internal/app/system/notify/errors.go
package notify

import "errors"

var (
	ErrQueueFull         = errors.New("notification queue is full")
	ErrDispatcherStopped = errors.New("notification dispatcher is stopped")
)
