package leave

import "errors"

var (
	ErrLeaveQuotaNotFound = errors.New("leave quota not found")
)
