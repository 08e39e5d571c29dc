package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository defines data access methods for leave requests.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByEmployeeID returns an employee's requests sorted by application
	// time descending.
	GetByEmployeeID(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	// List returns all requests, optionally filtered by a case-insensitive
	// substring match over employee id/name, sorted by application time
	// descending.
	List(ctx context.Context, search string) ([]LeaveRequest, error)
	Update(ctx context.Context, request LeaveRequest) error
	Delete(ctx context.Context, id string) error
	// FindApprovedOverlapping returns an approved request for the employee
	// whose span intersects [startDate, endDate] inclusive, excluding
	// excludeID when non-empty.
	FindApprovedOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (*LeaveRequest, error)
	// FindApprovedCovering returns an approved request for the employee whose
	// span covers the given day.
	FindApprovedCovering(ctx context.Context, employeeID string, day time.Time) (*LeaveRequest, error)
	// CountApprovedDaysInMonth sums the inclusive day counts of approved
	// requests intersecting the given month.
	CountApprovedDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error)
}
