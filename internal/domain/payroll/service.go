package payroll

import (
	"context"
	"io"
)

// Service is the payroll calculator business interface.
type Service interface {
	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error)
	List(ctx context.Context, search string) ([]PayrollResponse, error)
	Update(ctx context.Context, req UpdatePayrollRequest) (PayrollResponse, error)
	// Approve finalizes a record. Approval always locks it.
	Approve(ctx context.Context, id, approvedBy string) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error
	GenerateSalarySlip(ctx context.Context, id string) (PayrollResponse, error)
	// DownloadSalarySlip streams the rendered slip. The caller closes the
	// reader.
	DownloadSalarySlip(ctx context.Context, id string) (io.ReadCloser, string, error)
}
