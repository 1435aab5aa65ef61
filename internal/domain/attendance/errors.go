package attendance

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid attendance period")
)
