package leave

import "errors"

var (
	ErrLeaveNotFound    = errors.New("leave not found")
	ErrInvalidLeaveType = errors.New("leave type must be one of: annual, sick, unpaid, other")
)
