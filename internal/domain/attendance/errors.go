package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrCheckInRequired   = errors.New("check-in required first")
	ErrOnBreak           = errors.New("cannot check out while on break")
	ErrOnApprovedLeave   = errors.New("employee is on approved leave today")

	// Break errors
	ErrAlreadyOnBreak  = errors.New("already on break")
	ErrNotOnBreak      = errors.New("not currently on break")
	ErrBreakNotStarted = errors.New("break was never started")

	// General errors
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrAttendanceLocked    = errors.New("cannot edit locked attendance")
	ErrTimingNotConfigured = errors.New("company timing is not configured")
)
