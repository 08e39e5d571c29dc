package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// At most one record exists per (employee, date); the date is always a UTC
// midnight.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	// GetByEmployeeAndDate returns nil when no record exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	Update(ctx context.Context, att Attendance) error
	// List returns records optionally filtered by a case-insensitive
	// substring match over the snapshotted employee id/name, newest day
	// first.
	List(ctx context.Context, search string) ([]Attendance, error)
	// CountByStatusOnDate tallies records per status for the given day.
	CountByStatusOnDate(ctx context.Context, date time.Time) (map[Status]int, error)
	// CountByStatusInMonth counts records with the given status in the month.
	CountByStatusInMonth(ctx context.Context, year int, month time.Month, status Status) (int, error)
	// CountPresentDaysInMonth counts an employee's Present and Late days in
	// the month (payroll input).
	CountPresentDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error)
	// LockByEmployeeAndMonth marks the employee's records in the month as
	// consumed by an approved payroll, blocking further edits.
	LockByEmployeeAndMonth(ctx context.Context, employeeID string, year int, month time.Month) error
}

// CompanyTimingRepository stores the singleton company timing row.
type CompanyTimingRepository interface {
	Get(ctx context.Context) (*CompanyTiming, error)
	Upsert(ctx context.Context, timing CompanyTiming) (CompanyTiming, error)
}
