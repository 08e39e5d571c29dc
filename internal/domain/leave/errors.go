package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidLeaveType     = errors.New("invalid leave type")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrOverlappingLeave     = errors.New("leave overlaps with existing approved leave")
	ErrLeaveAlreadyApproved = errors.New("approved leave cannot be edited or deleted")
)
