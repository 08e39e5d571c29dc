package response

import (
	"errors"
	"net/http"

	"github.com/staffly/hr-backend-go/internal/domain/attendance"
	"github.com/staffly/hr-backend-go/internal/domain/employee"
	"github.com/staffly/hr-backend-go/internal/domain/leave"
	"github.com/staffly/hr-backend-go/internal/domain/payroll"
	"github.com/staffly/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequest(w, "Unknown leave type", nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Overlapping approved leave exists")
	case errors.Is(err, leave.ErrLeaveAlreadyApproved):
		Conflict(w, "Approved leave cannot be edited or deleted")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrCheckInRequired):
		BadRequest(w, "Check-in required first", nil)
	case errors.Is(err, attendance.ErrOnBreak):
		Conflict(w, "Cannot check out while on break")
	case errors.Is(err, attendance.ErrOnApprovedLeave):
		Conflict(w, "Employee is on approved leave today")
	case errors.Is(err, attendance.ErrAlreadyOnBreak):
		Conflict(w, "Already on break")
	case errors.Is(err, attendance.ErrNotOnBreak):
		BadRequest(w, "Not currently on break", nil)
	case errors.Is(err, attendance.ErrBreakNotStarted):
		BadRequest(w, "Break was never started", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceLocked):
		Forbidden(w, "Attendance record is locked")
	case errors.Is(err, attendance.ErrTimingNotConfigured):
		NotFound(w, "Company timing is not configured")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollExists):
		Conflict(w, "Payroll already exists for this month")
	case errors.Is(err, payroll.ErrPayrollLocked):
		Forbidden(w, "Payroll record is locked")
	case errors.Is(err, payroll.ErrSlipNotReady):
		NotFound(w, "Salary slip has not been generated")
	case errors.Is(err, payroll.ErrInvalidMonth):
		BadRequest(w, "Month must be a full month name", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
