package payroll

import "context"

// PayrollRepository defines data access methods for payroll records.
type PayrollRepository interface {
	Create(ctx context.Context, p Payroll) (Payroll, error)
	GetByID(ctx context.Context, id string) (Payroll, error)
	// GetByEmployeeAndPeriod returns nil when no record exists for the period.
	GetByEmployeeAndPeriod(ctx context.Context, employeeID, month string, year int) (*Payroll, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]Payroll, error)
	// List returns records optionally filtered by a case-insensitive substring
	// match over the employee name or code, newest period first.
	List(ctx context.Context, search string) ([]Payroll, error)
	Update(ctx context.Context, p Payroll) error
	Delete(ctx context.Context, id string) error
}
