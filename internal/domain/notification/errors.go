package notification

import "errors"

var (
	ErrAlertNotFound = errors.New("alert not found")
	ErrQueueStopped  = errors.New("alert queue stopped")
)
