package leave

import "context"

// Service is the leave ledger business interface.
type Service interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	List(ctx context.Context, search string) ([]LeaveResponse, error)
	// UpdateStatus moves a request between Pending, Approved and Rejected.
	// Entitlement is consumed exactly once, on the transition into Approved.
	UpdateStatus(ctx context.Context, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	Update(ctx context.Context, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}
