package leave

import "errors"

var (
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrAccrualAlreadyExists = errors.New("leave accrual already recorded for this period")
	ErrInvalidYear          = errors.New("invalid leave year")
)
