package employee

import "context"

// EmployeeRepository defines data access methods for employee records.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, search string) ([]Employee, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, emp Employee) error
	// UpdateEntitlements replaces the entitlement table on the employee row.
	UpdateEntitlements(ctx context.Context, id string, entitlements Entitlements) error
	Delete(ctx context.Context, id string) error
	// GetAdmins returns every employee with admin privileges.
	GetAdmins(ctx context.Context) ([]Employee, error)
}
